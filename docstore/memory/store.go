// Package memory implements a docstore.Store held in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore"
)

var _ docstore.Store = (*Store)(nil)

// A Store keeps collections of documents in memory, in insertion order.
//
// Documents are copied on the way in and on the way out,
// so callers never share state with the Store.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]roadtrip.Document
}

// New constructs an empty *Store.
func New() *Store {
	return &Store{collections: make(map[string][]roadtrip.Document)}
}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, collection string, filter roadtrip.Filter) ([]roadtrip.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make([]roadtrip.Document, 0)
	for _, doc := range s.collections[collection] {
		if docstore.Match(doc, filter) {
			found = append(found, clone(doc))
		}
	}

	return found, nil
}

// FindOne implements docstore.Store.
func (s *Store) FindOne(ctx context.Context, collection string, filter roadtrip.Filter) (roadtrip.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[collection] {
		if docstore.Match(doc, filter) {
			return clone(doc), nil
		}
	}

	return nil, fmt.Errorf("%w: no document in %s matches %v", roadtrip.ErrNotExist, collection, filter)
}

// Insert implements docstore.Store.
//
// Documents lacking an _id are assigned a random one.
func (s *Store) Insert(ctx context.Context, collection string, docs ...roadtrip.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range docs {
		if doc == nil {
			return fmt.Errorf("%w: nil document", roadtrip.ErrNotValid)
		}

		c := clone(doc)
		if _, ok := c[roadtrip.IDField]; !ok {
			c[roadtrip.IDField] = uuid.NewString()
		}

		s.collections[collection] = append(s.collections[collection], c)
	}

	return nil
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		kept    []roadtrip.Document
		deleted int64
	)
	for _, doc := range s.collections[collection] {
		if docstore.Match(doc, filter) {
			deleted++
			continue
		}

		kept = append(kept, doc)
	}

	s.collections[collection] = kept

	return deleted, nil
}

// Count implements docstore.Store.
func (s *Store) Count(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, doc := range s.collections[collection] {
		if docstore.Match(doc, filter) {
			n++
		}
	}

	return n, nil
}

// Close implements docstore.Store. It is a no-op.
func (s *Store) Close(context.Context) error { return nil }

func clone(doc roadtrip.Document) roadtrip.Document {
	return roadtrip.Document(cloneMap(doc))
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}

	return out
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case roadtrip.Document:
		return roadtrip.Document(cloneMap(v))
	case map[string]any:
		return cloneMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []roadtrip.Document:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneMap(item)
		}
		return out
	default:
		return v
	}
}
