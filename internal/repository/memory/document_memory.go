// Package memory provides an in-memory DocumentStore for tests and local
// development. Documents are kept in insertion order per collection and every
// read or write passes through a JSON round trip, so callers observe the same
// value semantics as the real backends.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gamesapi/internal/repository"
)

// DocumentMemory is the in-memory implementation of repository.DocumentStore.
type DocumentMemory struct {
	mu     sync.RWMutex
	nextID int64
	data   map[string][]entry
}

type entry struct {
	id  string
	doc repository.Document
}

// NewDocumentMemory creates an empty in-memory gateway.
func NewDocumentMemory() *DocumentMemory {
	return &DocumentMemory{nextID: 1, data: make(map[string][]entry)}
}

var _ repository.DocumentStore = (*DocumentMemory)(nil)

// CreateDocument stores a copy of doc and returns a sequential string id.
func (m *DocumentMemory) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	stored, err := toDocument(doc)
	if err != nil {
		return "", &repository.PersistenceError{Op: "encode " + collection, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := strconv.FormatInt(m.nextID, 10)
	m.nextID++
	m.data[collection] = append(m.data[collection], entry{id: id, doc: stored})
	return id, nil
}

// GetDocuments returns copies of the collection's documents matching filter,
// oldest first, capped at limit.
func (m *DocumentMemory) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int64) ([]repository.Document, error) {
	if limit <= 0 {
		limit = repository.DefaultLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]repository.Document, 0)
	for _, e := range m.data[collection] {
		ok, err := matches(e.doc, filter)
		if err != nil {
			return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
		}
		if !ok {
			continue
		}
		out, err := toDocument(e.doc)
		if err != nil {
			return nil, &repository.PersistenceError{Op: "decode " + collection, Err: err}
		}
		out["id"] = e.id
		docs = append(docs, out)
		if int64(len(docs)) >= limit {
			break
		}
	}
	return docs, nil
}

// ListCollections returns the collection names in lexical order.
func (m *DocumentMemory) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Ping always succeeds.
func (m *DocumentMemory) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (m *DocumentMemory) Close(ctx context.Context) error { return nil }

// toDocument copies v into a fresh Document through JSON, detaching it from
// the caller's value.
func toDocument(v any) (repository.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc repository.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func matches(doc repository.Document, filter repository.Filter) (bool, error) {
	switch p := filter.(type) {
	case nil:
		return true, nil
	case repository.Equals:
		v, ok := doc[p.Field]
		return ok && jsonEqual(v, p.Value), nil
	case repository.ContainsFold:
		v, ok := doc[p.Field]
		if !ok || v == nil {
			return false, nil
		}
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(p.Term)), nil
	case repository.Or:
		if len(p) == 0 {
			return false, fmt.Errorf("or filter requires at least one predicate")
		}
		for _, sub := range p {
			ok, err := matches(doc, sub)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf("unsupported filter type %T", filter)
	}
}

// jsonEqual compares two values by their JSON encoding, so 2 and 2.0 are the
// same number regardless of the Go type they arrived in.
func jsonEqual(a, b any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ja) == string(jb)
}
