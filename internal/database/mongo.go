package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"

	"gamesapi/internal/config"
)

// NewMongo connects a MongoDB client with command tracing enabled and
// verifies the deployment responds before handing the client back.
func NewMongo(c config.StoreConfig) (*mongo.Client, error) {
	if err := ValidateURL(config.DriverMongo, c.URL); err != nil {
		return nil, err
	}
	if c.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}

	opts := options.Client().
		ApplyURI(c.URL).
		SetMonitor(otelmongo.NewMonitor())
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(c.MaxPoolSize))
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(c))
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	// Verify connectivity before handing the client out
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}
