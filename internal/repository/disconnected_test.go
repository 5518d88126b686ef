package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisconnectedFailsFast(t *testing.T) {
	cause := errors.New("mongo connect: connection refused")
	store := NewDisconnected(cause)
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		id, err := store.CreateDocument(ctx, "game", map[string]any{"title": "x"})
		assert.Empty(t, id)
		assertPersistence(t, err, cause)
	})

	t.Run("get", func(t *testing.T) {
		docs, err := store.GetDocuments(ctx, "game", nil, 10)
		assert.Nil(t, docs)
		assertPersistence(t, err, cause)
	})

	t.Run("list collections", func(t *testing.T) {
		names, err := store.ListCollections(ctx)
		assert.Nil(t, names)
		assertPersistence(t, err, cause)
	})

	t.Run("ping", func(t *testing.T) {
		assertPersistence(t, store.Ping(ctx), cause)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Close(ctx))
	})
}

func assertPersistence(t *testing.T, err error, cause error) {
	t.Helper()
	var perr *PersistenceError
	assert.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
}

func TestPersistenceErrorMessage(t *testing.T) {
	err := &PersistenceError{Op: "insert game", Err: errors.New("boom")}
	assert.Equal(t, "persistence: insert game: boom", err.Error())
	assert.Equal(t, "boom", errors.Unwrap(err).Error())
}
