package store

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type doc struct {
	Name string `json:"nombre"`
	Age  int    `json:"edad"`
}

func TestFirebasePutsJSON(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.URL.Query().Get("auth")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write(gotBody)
	}))
	defer srv.Close()

	fb := NewFirebase(srv.URL+"/", WithAuth("s3cret"))
	err := fb.Write(context.Background(), "memoria/1234/abc", map[string]any{"errores": 2, "fecha": "2025-03-01 10:30:45"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/memoria/1234/abc.json", gotPath)
	assert.Equal(t, "s3cret", gotAuth)
	assert.Equal(t, int64(2), gjson.GetBytes(gotBody, "errores").Int())
	assert.Equal(t, "2025-03-01 10:30:45", gjson.GetBytes(gotBody, "fecha").String())
}

func TestFirebaseWriteErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"database busy"}`))
	}))
	defer srv.Close()

	err := NewFirebase(srv.URL).Write(context.Background(), "calculo/1/x", doc{})
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Equal(t, "database busy", se.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFirebaseGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/usuarios/1234.json":
			_, _ = w.Write([]byte(`{"nombre":"Ana","edad":71}`))
		case "/denied.json":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Permission denied"}`))
		default:
			_, _ = w.Write([]byte(`null`))
		}
	}))
	defer srv.Close()
	fb := NewFirebase(srv.URL)

	var d doc
	found, err := fb.Get(context.Background(), "usuarios/1234", &d)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "Ana", Age: 71}, d)

	found, err = fb.Get(context.Background(), "usuarios/9999", &d)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = fb.Get(context.Background(), "denied", &d)
	assert.ErrorContains(t, err, "Permission denied")
}

func TestFirebaseGetRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"nombre":"Luis","edad":80}`))
	}))
	defer srv.Close()

	var d doc
	found, err := NewFirebase(srv.URL, WithReadAttempts(3)).Get(context.Background(), "usuarios/1000", &d)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Luis", d.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Put(ctx, "usuarios/1234", doc{Name: "Ana", Age: 71}))
	require.NoError(t, m.Put(ctx, "/usuarios/5678/", doc{Name: "Luis", Age: 80}))
	require.NoError(t, m.Write(ctx, "memoria/1234/a", map[string]int{"errores": 1}))

	var d doc
	found, err := m.Get(ctx, "usuarios/5678", &d)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Luis", d.Name)

	var all map[string]doc
	found, err = m.Get(ctx, "usuarios", &all)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]doc{"1234": {"Ana", 71}, "5678": {"Luis", 80}}, all)

	var nested map[string]map[string]map[string]int
	found, err = m.Get(ctx, "memoria", &nested)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, nested["1234"]["a"]["errores"])

	found, err = m.Get(ctx, "nothing", &d)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, []string{"memoria/1234/a", "usuarios/1234", "usuarios/5678"}, m.Paths())
}

type failingWriter struct{ err error }

func (f failingWriter) Write(context.Context, string, any) error { return f.err }

func TestMultiWritesEverywhere(t *testing.T) {
	ctx := context.Background()
	a, b := NewMemory(), NewMemory()
	require.NoError(t, Multi{a, b}.Write(ctx, "espacial/1/x", map[string]int{"tiempoUsado": 3}))
	assert.Equal(t, []string{"espacial/1/x"}, a.Paths())
	assert.Equal(t, []string{"espacial/1/x"}, b.Paths())

	err := Multi{a, failingWriter{errors.New("boom")}}.Write(ctx, "espacial/1/y", 1)
	assert.ErrorContains(t, err, "1 of 2 writes failed")
	assert.Len(t, a.Paths(), 2)
}

func TestNATSSubject(t *testing.T) {
	n := NewNATS(nil, "cogtrain.results")
	assert.Equal(t, "cogtrain.results.calculo.1234.abc", n.Subject("/calculo/1234/abc"))
	assert.Equal(t, "calculo.1234", NewNATS(nil, "").Subject("calculo/1234"))
}
