// Package store wraps the MongoDB driver behind the small collection/id
// document interface the rest of the application is written against.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by Get when no document carries the requested id.
var ErrNotFound = errors.New("document not found")

// Store provides document access by collection name and string id. Any
// transport failure from the driver is returned as-is and treated as fatal
// to the calling request.
type Store struct {
	db *mongo.Database
}

// Open connects to MongoDB and verifies the connection with a short ping.
func Open(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Store{db: client.Database(dbName)}, nil
}

// New wraps an existing database handle. Used by tests.
func New(db *mongo.Database) *Store { return &Store{db: db} }

// Get decodes the document with the given id into out. Returns ErrNotFound
// when no such document exists.
func (s *Store) Get(ctx context.Context, collection, id string, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// Query decodes all documents whose field equals value into out, which must
// be a pointer to a slice.
func (s *Store) Query(ctx context.Context, collection, field string, value any, out any) error {
	filter := bson.M{}
	if field != "" {
		filter[field] = value
	}
	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// Set writes the full document under the given id, creating or replacing it.
// The replace-with-upsert semantics make concurrent identical writes collapse
// to a harmless last-writer-wins.
func (s *Store) Set(ctx context.Context, collection, id string, doc any) error {
	_, err := s.db.Collection(collection).ReplaceOne(ctx,
		bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// Update sets only the given fields on an existing document.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the document with the given id. Deleting an absent document
// is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
