package repository

import "context"

// Disconnected is the gateway installed when the real store handle could not
// be established at startup. Every operation fails fast with a
// PersistenceError wrapping the initialization failure. There is no automatic
// reconnection; the process must be restarted (or the handle rebuilt) to
// leave this state.
type Disconnected struct {
	err error
}

// NewDisconnected returns a DocumentStore that reports err on every call.
func NewDisconnected(err error) *Disconnected {
	return &Disconnected{err: err}
}

var _ DocumentStore = (*Disconnected)(nil)

func (d *Disconnected) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	return "", &PersistenceError{Op: "insert " + collection, Err: d.err}
}

func (d *Disconnected) GetDocuments(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error) {
	return nil, &PersistenceError{Op: "find " + collection, Err: d.err}
}

func (d *Disconnected) ListCollections(ctx context.Context) ([]string, error) {
	return nil, &PersistenceError{Op: "list collections", Err: d.err}
}

func (d *Disconnected) Ping(ctx context.Context) error {
	return &PersistenceError{Op: "ping", Err: d.err}
}

// Close is a no-op; there is no handle to release.
func (d *Disconnected) Close(ctx context.Context) error { return nil }
