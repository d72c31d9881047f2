// Package store holds the persistence backends for result records and
// player documents.
package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Writer persists one record at a slash-separated path.
type Writer interface {
	Write(ctx context.Context, path string, record any) error
}

// Documents reads and writes JSON documents by path.
type Documents interface {
	// Get decodes the document at path into dst. found is false when nothing is stored there.
	Get(ctx context.Context, path string, dst any) (found bool, err error)
	Put(ctx context.Context, path string, doc any) error
}

// Multi writes to every writer; the write fails if any of them fails.
type Multi []Writer

func (m Multi) Write(ctx context.Context, path string, record any) error {
	var errs []string
	for _, w := range m {
		if err := w.Write(ctx, path, record); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("store: %d of %d writes failed: %s", len(errs), len(m), strings.Join(errs, "; "))
	}
	return nil
}

func cleanPath(p string) string {
	return strings.Trim(p, "/")
}
