package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Memory keeps documents in process. Reading a path that only has children
// returns them as a nested object, like the realtime database does.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: map[string][]byte{}}
}

func (m *Memory) Write(ctx context.Context, path string, record any) error {
	return m.Put(ctx, path, record)
}

func (m *Memory) Put(_ context.Context, path string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "memory store: marshal")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[cleanPath(path)] = b
	return nil
}

func (m *Memory) Get(_ context.Context, path string, dst any) (bool, error) {
	path = cleanPath(path)
	m.mu.RLock()
	defer m.mu.RUnlock()

	if b, ok := m.docs[path]; ok {
		return true, errors.Wrap(json.Unmarshal(b, dst), "memory store: unmarshal")
	}

	tree := map[string]any{}
	found := false
	for k, b := range m.docs {
		rest, ok := strings.CutPrefix(k, path+"/")
		if !ok {
			continue
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return false, errors.Wrap(err, "memory store: unmarshal")
		}
		insert(tree, strings.Split(rest, "/"), v)
		found = true
	}
	if !found {
		return false, nil
	}
	b, err := json.Marshal(tree)
	if err != nil {
		return false, errors.Wrap(err, "memory store: marshal")
	}
	return true, errors.Wrap(json.Unmarshal(b, dst), "memory store: unmarshal")
}

// Paths lists the stored paths in order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.docs))
	for k := range m.docs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func insert(tree map[string]any, segs []string, v any) {
	if len(segs) == 1 {
		tree[segs[0]] = v
		return
	}
	child, ok := tree[segs[0]].(map[string]any)
	if !ok {
		child = map[string]any{}
		tree[segs[0]] = child
	}
	insert(child, segs[1:], v)
}
