package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/yigit/gradebook/internal/config"
	"github.com/yigit/gradebook/internal/pkg/helpers"
)

// DefaultMongoDatabase is used when neither the config nor the URI names one
const DefaultMongoDatabase = "gradebook"

// NewMongoClient connects to MongoDB. The returned client is usable even
// when err is ErrUnreachable: the driver reconnects on its own, and the
// health endpoint reports the outage meanwhile.
func NewMongoClient(cfg *config.Config) (*mongo.Client, string, error) {
	database, err := MongoDatabaseName(cfg)
	if err != nil {
		return nil, "", err
	}

	timeout := helpers.ParseDuration(cfg.Store.ConnectTimeout, 10*time.Second)
	opts := options.Client().
		ApplyURI(cfg.Store.MongoURI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(helpers.ParseDuration(cfg.Store.ServerSelectionTimeout, 3*time.Second))
	if cfg.Store.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.Store.MaxConns))
	}
	if cfg.Store.MinConns > 0 {
		opts.SetMinPoolSize(uint64(cfg.Store.MinConns))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return client, database, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return client, database, nil
}

// MongoDatabaseName picks the configured database, else the one in the URI
// path, else DefaultMongoDatabase.
func MongoDatabaseName(cfg *config.Config) (string, error) {
	if cfg.Store.MongoDatabase != "" {
		return cfg.Store.MongoDatabase, nil
	}
	cs, err := connstring.ParseAndValidate(cfg.Store.MongoURI)
	if err != nil {
		return "", fmt.Errorf("invalid MONGO_URI: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultMongoDatabase, nil
}
