package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gamesapi/internal/repository"
)

// DocumentMongo is the MongoDB implementation of repository.DocumentStore.
// Documents are stored with their native BSON representation and surrogate
// ObjectIDs; ids leave this package only as hex strings.
type DocumentMongo struct {
	db *mongodrv.Database
}

// NewDocumentMongo creates a new DocumentMongo gateway over an established
// database handle.
func NewDocumentMongo(db *mongodrv.Database) *DocumentMongo {
	return &DocumentMongo{db: db}
}

var _ repository.DocumentStore = (*DocumentMongo)(nil)

// CreateDocument inserts doc into the named collection and returns the
// assigned identifier as a string.
func (r *DocumentMongo) CreateDocument(ctx context.Context, collection string, doc any) (string, error) {
	res, err := r.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", &repository.PersistenceError{Op: "insert " + collection, Err: err}
	}
	return renderID(res.InsertedID), nil
}

// GetDocuments runs filter against the collection, capped at limit results.
// ObjectIDs embed their creation time, so sorting _id ascending yields
// creation order, oldest first.
func (r *DocumentMongo) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int64) ([]repository.Document, error) {
	query, err := toBSON(filter)
	if err != nil {
		return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
	}
	if limit <= 0 {
		limit = repository.DefaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)
	cur, err := r.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, &repository.PersistenceError{Op: "find " + collection, Err: err}
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, &repository.PersistenceError{Op: "decode " + collection, Err: err}
	}

	docs := make([]repository.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, normalize(m))
	}
	return docs, nil
}

// ListCollections returns the collection names of the database.
func (r *DocumentMongo) ListCollections(ctx context.Context) ([]string, error) {
	names, err := r.db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, &repository.PersistenceError{Op: "list collections", Err: err}
	}
	return names, nil
}

// Ping verifies the deployment is reachable.
func (r *DocumentMongo) Ping(ctx context.Context) error {
	if err := r.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return &repository.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

// Close disconnects the underlying client.
func (r *DocumentMongo) Close(ctx context.Context) error {
	if err := r.db.Client().Disconnect(ctx); err != nil {
		return &repository.PersistenceError{Op: "disconnect", Err: err}
	}
	return nil
}

// normalize moves the surrogate identifier of a raw document into the
// exported "id" string field and strips the internal one.
func normalize(m bson.M) repository.Document {
	doc := repository.Document(m)
	if id, ok := doc["_id"]; ok {
		doc["id"] = renderID(id)
		delete(doc, "_id")
	}
	return doc
}

// renderID renders a store identifier as a plain string.
func renderID(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
