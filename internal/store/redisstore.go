package store

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis stores every document as a JSON string under <prefix><path>.
// Reading a path that only has children assembles them into one object,
// the same way Memory does.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func (r *Redis) key(path string) string { return r.prefix + cleanPath(path) }

func (r *Redis) Write(ctx context.Context, path string, record any) error {
	return r.Put(ctx, path, record)
}

func (r *Redis) Put(ctx context.Context, path string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "redis store: marshal")
	}
	return errors.Wrap(r.client.Set(ctx, r.key(path), b, 0).Err(), "redis store: set")
}

func (r *Redis) Get(ctx context.Context, path string, dst any) (bool, error) {
	b, err := r.client.Get(ctx, r.key(path)).Bytes()
	if err == nil {
		return true, errors.Wrap(json.Unmarshal(b, dst), "redis store: unmarshal")
	}
	if !errors.Is(err, redis.Nil) {
		return false, errors.Wrap(err, "redis store: get")
	}
	return r.subtree(ctx, path, dst)
}

func (r *Redis) subtree(ctx context.Context, path string, dst any) (bool, error) {
	base := r.key(path) + "/"

	var keys []string
	iter := r.client.Scan(ctx, 0, globEscaper.Replace(base)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return false, errors.Wrap(err, "redis store: scan")
	}
	if len(keys) == 0 {
		return false, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis store: mget")
	}
	tree := map[string]any{}
	for i, v := range vals {
		// nil when the key expired or was deleted after the scan
		s, ok := v.(string)
		if !ok {
			continue
		}
		var doc any
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return false, errors.Wrap(err, "redis store: unmarshal")
		}
		insert(tree, strings.Split(strings.TrimPrefix(keys[i], base), "/"), doc)
	}
	if len(tree) == 0 {
		return false, nil
	}

	b, err := json.Marshal(tree)
	if err != nil {
		return false, errors.Wrap(err, "redis store: marshal")
	}
	return true, errors.Wrap(json.Unmarshal(b, dst), "redis store: unmarshal")
}
