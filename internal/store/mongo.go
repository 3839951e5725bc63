package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pocketfin-ledger/internal/config"
)

const (
	// kvCollectionName is the name of the key-value collection in MongoDB
	kvCollectionName = "ledger_kv"
)

// kvDocument is the shape of a stored entry. The JSON document is kept as a
// raw string so no bson round-trip can alter field ordering or number types.
type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore is a Store backed by a MongoDB collection with one document per key
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoStore connects to MongoDB and returns the store
func NewMongoStore(ctx context.Context, logger *slog.Logger, cfg *config.MongoDBConfig) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB")

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(kvCollectionName),
		logger: logger,
	}, nil
}

// Read returns the document stored under key
func (s *MongoStore) Read(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrKeyNotFound
		}
		s.logger.Error("Failed to read key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return []byte(doc.Value), nil
}

// Write upserts the document stored under key
func (s *MongoStore) Write(ctx context.Context, key string, value []byte) error {
	doc := kvDocument{Key: key, Value: string(value)}
	opts := options.Replace().SetUpsert(true)

	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		s.logger.Error("Failed to write key", "key", key, "error", err)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Exists reports whether key holds a value
func (s *MongoStore) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": key}, options.Count().SetLimit(1))
	if err != nil {
		s.logger.Error("Failed to check key existence", "key", key, "error", err)
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}

	return count > 0, nil
}

// Clear drops the whole key-value collection
func (s *MongoStore) Clear(ctx context.Context) error {
	if err := s.coll.Drop(ctx); err != nil {
		s.logger.Error("Failed to clear store", "error", err)
		return fmt.Errorf("failed to clear store: %w", err)
	}

	return nil
}

// Close disconnects the MongoDB client
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to close MongoDB connection: %w", err)
	}
	s.logger.Info("Closed MongoDB connection")
	return nil
}
