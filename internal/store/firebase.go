package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// Firebase talks to a Realtime Database over its REST API:
// a document lives at <base>/<path>.json.
type Firebase struct {
	base     string
	secret   string
	client   *http.Client
	attempts uint
}

type FirebaseOption func(*Firebase)

// WithAuth appends ?auth=<secret> to every request.
func WithAuth(secret string) FirebaseOption { return func(f *Firebase) { f.secret = secret } }

func WithHTTPClient(c *http.Client) FirebaseOption { return func(f *Firebase) { f.client = c } }

// WithReadAttempts sets how many times a read is tried.
func WithReadAttempts(n uint) FirebaseOption { return func(f *Firebase) { f.attempts = n } }

func NewFirebase(base string, opts ...FirebaseOption) *Firebase {
	f := &Firebase{
		base:     strings.TrimRight(base, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// StatusError is a non-2xx answer of the database.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("firebase: status %d: %s", e.Status, e.Message)
}

func (f *Firebase) url(path string) string {
	u := f.base + "/" + cleanPath(path) + ".json"
	if f.secret != "" {
		u += "?auth=" + url.QueryEscape(f.secret)
	}
	return u
}

// Write upserts record at path. Writes are not retried.
func (f *Firebase) Write(ctx context.Context, path string, record any) error {
	return f.Put(ctx, path, record)
}

func (f *Firebase) Put(ctx context.Context, path string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "firebase: marshal")
	}
	_, err = f.do(ctx, http.MethodPut, path, body)
	return err
}

// Get reads the document at path. Transport failures and 5xx answers are retried.
func (f *Firebase) Get(ctx context.Context, path string, dst any) (bool, error) {
	var body []byte
	err := retry.Do(
		func() error {
			b, err := f.do(ctx, http.MethodGet, path, nil)
			if err != nil {
				var se *StatusError
				if errors.As(err, &se) && se.Status < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().
				Err(err).
				Str("evt.name", "firebase.get.retry").
				Str("path", path).
				Uint("attempt", n+1).
				Msg("retrying read")
		}),
	)
	if err != nil {
		return false, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return false, errors.Wrap(err, "firebase: unmarshal")
	}
	return true, nil
}

func (f *Firebase) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, f.url(path), rd)
	if err != nil {
		return nil, errors.Wrap(err, "firebase: build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "firebase: %s %s", method, path)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "firebase: read body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(b, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}
	return b, nil
}
