package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/cogtrain-backend/internal/config"
	"github.com/xtding233/cogtrain-backend/internal/store"
)

func TestStoresFallBackToMemory(t *testing.T) {
	out := Stores(StoresIn{Config: &config.Config{}})

	mem, ok := out.Documents.(*store.Memory)
	require.True(t, ok)

	sink, ok := out.Sink.(store.Multi)
	require.True(t, ok)
	require.Len(t, sink, 1)
	assert.Same(t, mem, sink[0])
}

func TestStoresPreferFirebase(t *testing.T) {
	out := Stores(StoresIn{Config: &config.Config{
		FirebaseURL:    "https://example.firebaseio.com",
		FirebaseSecret: "s3cret",
	}})

	fb, ok := out.Documents.(*store.Firebase)
	require.True(t, ok)

	sink := out.Sink.(store.Multi)
	require.Len(t, sink, 1)
	assert.Same(t, fb, sink[0])
}

func TestNoURLsProvideNothing(t *testing.T) {
	client, err := Redis(&config.Config{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, client)

	conn, err := NATS(&config.Config{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, conn)
}
