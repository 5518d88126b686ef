// Package repository contains the persistence gateway abstraction for the
// games catalog. Store backends live in subpackages (mongo, postgres, memory)
// and are selected at startup; everything above this package talks to the
// DocumentStore interface only.
package repository

import (
	"context"
	"fmt"
)

// Document is one raw record of a collection. Documents returned by reads
// always carry their surrogate identifier under the "id" key as a string;
// backend-internal identifier fields are stripped before a document leaves
// the gateway.
type Document map[string]any

// DefaultLimit caps reads when the caller does not supply a positive limit.
const DefaultLimit = 50

// DocumentStore is the persistence gateway: the sole point of contact with
// the underlying document store. It isolates the rest of the system from
// store-specific identifier types, query dialects and connection details.
// Reads return documents in creation order, oldest first.
type DocumentStore interface {
	// CreateDocument serializes doc into the backend's native representation,
	// inserts it into the named collection and returns the newly assigned
	// surrogate identifier rendered as a string. On success the record is
	// durably retrievable by subsequent reads.
	CreateDocument(ctx context.Context, collection string, doc any) (string, error)

	// GetDocuments returns at most limit documents of the collection matching
	// filter. A nil filter matches all documents; limit <= 0 applies
	// DefaultLimit. No match yields an empty slice, not an error. Reads never
	// mutate the store.
	GetDocuments(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)

	// ListCollections returns the names of the populated collections.
	ListCollections(ctx context.Context) ([]string, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying store handle.
	Close(ctx context.Context) error
}

// PersistenceError wraps a store-level failure (unreachable store, rejected
// write, driver error) together with the operation that caused it. The
// underlying cause message is preserved for the HTTP error response.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
