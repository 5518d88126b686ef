package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gamesapi/internal/repository"
)

// DocumentPostgres is the PostgreSQL implementation of repository.DocumentStore.
// Every record is a row of a single documents table: the collection name in
// one column, the record itself as JSONB and a UUID surrogate key assigned by
// the database. It uses database/sql with parameterized queries only.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres gateway.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentStore = (*DocumentPostgres)(nil)

// CreateDocument stores doc as a JSONB row and returns the generated UUID.
func (r *DocumentPostgres) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", &repository.PersistenceError{Op: "encode " + collection, Err: err}
	}

	const q = `INSERT INTO documents (collection, data) VALUES ($1, $2) RETURNING id`
	var id string
	if err := r.db.QueryRowContext(ctx, q, collection, data).Scan(&id); err != nil {
		return "", &repository.PersistenceError{Op: "insert " + collection, Err: err}
	}
	return id, nil
}

// GetDocuments selects rows of the collection matching filter, in creation
// order, capped at limit.
func (r *DocumentPostgres) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int64) ([]repository.Document, error) {
	if limit <= 0 {
		limit = repository.DefaultLimit
	}

	where, filterArgs, err := whereClause(filter, 2)
	if err != nil {
		return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
	}

	q := `SELECT id, data FROM documents WHERE collection = $1`
	args := append([]any{collection}, filterArgs...)
	if where != "" {
		q += " AND " + where
	}
	q += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
	}
	defer rows.Close()

	docs := make([]repository.Document, 0)
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, &repository.PersistenceError{Op: "scan " + collection, Err: err}
		}
		var doc repository.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &repository.PersistenceError{Op: "decode " + collection, Err: err}
		}
		doc["id"] = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
	}
	return docs, nil
}

// ListCollections returns the distinct collection names present in the table.
func (r *DocumentPostgres) ListCollections(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT collection FROM documents ORDER BY collection`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &repository.PersistenceError{Op: "list collections", Err: err}
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &repository.PersistenceError{Op: "list collections", Err: err}
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &repository.PersistenceError{Op: "list collections", Err: err}
	}
	return names, nil
}

// Ping verifies database connectivity.
func (r *DocumentPostgres) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return &repository.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (r *DocumentPostgres) Close(ctx context.Context) error {
	return r.db.Close()
}
