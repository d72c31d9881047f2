package store

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
)

// NATS publishes every record as JSON on <prefix>.<path with / as .>.
type NATS struct {
	conn   *nats.Conn
	prefix string
}

func NewNATS(conn *nats.Conn, prefix string) *NATS {
	return &NATS{conn: conn, prefix: prefix}
}

// Subject maps a record path onto a subject.
func (n *NATS) Subject(path string) string {
	s := strings.ReplaceAll(cleanPath(path), "/", ".")
	if n.prefix == "" {
		return s
	}
	return n.prefix + "." + s
}

func (n *NATS) Write(ctx context.Context, path string, record any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "nats store: marshal")
	}
	return errors.Wrap(n.conn.Publish(n.Subject(path), b), "nats store: publish")
}
