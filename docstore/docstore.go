package docstore

import (
	"context"
	"reflect"
	"strings"

	"github.com/xy-planning-network/roadtrip"
)

// A Store is a document database holding named collections.
type Store interface {
	// Find returns every document in collection matching filter, in insertion order.
	// Find returns an empty slice, not an error, when nothing matches.
	Find(ctx context.Context, collection string, filter roadtrip.Filter) ([]roadtrip.Document, error)

	// FindOne returns the first document in collection matching filter.
	// FindOne returns an error wrapping roadtrip.ErrNotExist when nothing matches.
	FindOne(ctx context.Context, collection string, filter roadtrip.Filter) (roadtrip.Document, error)

	// Insert adds docs to collection.
	Insert(ctx context.Context, collection string, docs ...roadtrip.Document) error

	// Delete removes every document in collection matching filter
	// and reports how many it removed.
	Delete(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error)

	// Count reports how many documents in collection match filter.
	Count(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error)

	// Close releases the connection to the database.
	Close(ctx context.Context) error
}

// Match asserts whether doc satisfies every condition in filter.
//
// Keys are dotted paths into nested objects.
// When a path reaches an array, the remaining path is matched against each element
// and the condition holds if any element satisfies it.
// Numbers compare by value regardless of their Go type.
func Match(doc roadtrip.Document, filter roadtrip.Filter) bool {
	for key, want := range filter {
		if !matchPath(map[string]any(doc), strings.Split(key, "."), want) {
			return false
		}
	}

	return true
}

func matchPath(val any, path []string, want any) bool {
	if len(path) == 0 {
		if arr, ok := asSlice(val); ok {
			if equal(arr, want) {
				return true
			}

			for _, item := range arr {
				if equal(item, want) {
					return true
				}
			}

			return false
		}

		return equal(val, want)
	}

	if arr, ok := asSlice(val); ok {
		for _, item := range arr {
			if matchPath(item, path, want) {
				return true
			}
		}

		return false
	}

	obj, ok := asMap(val)
	if !ok {
		return false
	}

	next, ok := obj[path[0]]
	if !ok {
		return false
	}

	return matchPath(next, path[1:], want)
}

func asMap(val any) (map[string]any, bool) {
	switch v := val.(type) {
	case map[string]any:
		return v, true
	case roadtrip.Document:
		return map[string]any(v), true
	default:
		return nil, false
	}
}

func asSlice(val any) ([]any, bool) {
	switch v := val.(type) {
	case []any:
		return v, true
	case []roadtrip.Document:
		out := make([]any, len(v))
		for i, d := range v {
			out[i] = d
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, d := range v {
			out[i] = d
		}
		return out, true
	default:
		return nil, false
	}
}

func equal(got, want any) bool {
	gf, gok := toFloat(got)
	wf, wok := toFloat(want)
	if gok && wok {
		return gf == wf
	}

	return reflect.DeepEqual(got, want)
}

func toFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
