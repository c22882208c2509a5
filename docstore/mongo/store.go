// Package mongo implements a docstore.Store backed by a MongoDB database.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var _ docstore.Store = (*Store)(nil)

// Config holds what Connect needs to reach a MongoDB database.
type Config struct {
	URI      string
	Database string
}

// A Store reads and writes documents in a single MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the deployment cfg.URI points at and pings it.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, fmt.Errorf("%w: mongo needs a URI and a database", roadtrip.ErrBadConfig)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", roadtrip.ErrUnavailable, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: %s", roadtrip.ErrUnavailable, err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// insertionOrder sorts by the order documents were written in,
// whatever _id a caller may have supplied.
var insertionOrder = bson.D{{Key: "$natural", Value: 1}}

// Find implements docstore.Store.
func (s *Store) Find(ctx context.Context, collection string, filter roadtrip.Filter) ([]roadtrip.Document, error) {
	opts := options.Find().SetSort(insertionOrder)
	cur, err := s.db.Collection(collection).Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, err
	}

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	found := make([]roadtrip.Document, len(raw))
	for i, m := range raw {
		found[i] = fromBSON(m)
	}

	return found, nil
}

// FindOne implements docstore.Store.
func (s *Store) FindOne(ctx context.Context, collection string, filter roadtrip.Filter) (roadtrip.Document, error) {
	opts := options.FindOne().SetSort(insertionOrder)

	var m bson.M
	err := s.db.Collection(collection).FindOne(ctx, toBSON(filter), opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: no document in %s matches %v", roadtrip.ErrNotExist, collection, filter)
	}
	if err != nil {
		return nil, err
	}

	return fromBSON(m), nil
}

// Insert implements docstore.Store.
//
// Documents lacking an _id are assigned an ObjectID by the driver.
func (s *Store) Insert(ctx context.Context, collection string, docs ...roadtrip.Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := make([]any, len(docs))
	for i, doc := range docs {
		if doc == nil {
			return fmt.Errorf("%w: nil document", roadtrip.ErrNotValid)
		}

		batch[i] = bson.M(doc)
	}

	_, err := s.db.Collection(collection).InsertMany(ctx, batch)
	return err
}

// Delete implements docstore.Store.
func (s *Store) Delete(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, toBSON(filter))
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

// Count implements docstore.Store.
func (s *Store) Count(ctx context.Context, collection string, filter roadtrip.Filter) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
}

// Close implements docstore.Store.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the database s reads and writes.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func toBSON(filter roadtrip.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}

	return bson.M(filter)
}

func fromBSON(m bson.M) roadtrip.Document {
	return roadtrip.Document(normalizeMap(m))
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}

	return out
}

// normalize converts driver types into the plain values a roadtrip.Document holds.
func normalize(val any) any {
	switch v := val.(type) {
	case primitive.M:
		return normalizeMap(v)
	case primitive.D:
		return normalizeMap(v.Map())
	case primitive.A:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case primitive.ObjectID:
		return v.Hex()
	default:
		return v
	}
}
