package gist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection holds one document per gist.
const mongoCollection = "gists"

// mongoDoc is the stored form of a Gist.
type mongoDoc struct {
	ID        string    `bson:"_id"`
	Source    string    `bson:"source"`
	Hint      string    `bson:"hint"`
	Syntax    string    `bson:"syntax"`
	PNG       []byte    `bson:"png"`
	Ephemeral bool      `bson:"ephemeral"`
	CreatedAt time.Time `bson:"created_at"`
}

// MongoStore keeps gists in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// sweep index on (ephemeral, created_at).
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("gist: mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gist: mongo ping: %w", err)
	}

	coll := client.Database(database).Collection(mongoCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ephemeral", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("gist: mongo index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Put upserts the gist document.
func (s *MongoStore) Put(ctx context.Context, g *Gist) error {
	doc := mongoDoc{
		ID:        g.ID,
		Source:    g.Source,
		Hint:      g.Hint,
		Syntax:    g.Syntax,
		PNG:       g.PNG,
		Ephemeral: g.Ephemeral,
		CreatedAt: g.CreatedAt.UTC(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": g.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("gist: mongo put %s: %w", g.ID, err)
	}
	return nil
}

// Get loads a gist document.
func (s *MongoStore) Get(ctx context.Context, id string) (*Gist, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gist: mongo get %s: %w", id, err)
	}
	return &Gist{
		ID:        doc.ID,
		Source:    doc.Source,
		Hint:      doc.Hint,
		Syntax:    doc.Syntax,
		PNG:       doc.PNG,
		Ephemeral: doc.Ephemeral,
		CreatedAt: doc.CreatedAt.UTC(),
	}, nil
}

// SetEphemeral updates the expiry flag.
func (s *MongoStore) SetEphemeral(ctx context.Context, id string, ephemeral bool) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"ephemeral": ephemeral}})
	if err != nil {
		return fmt.Errorf("gist: mongo set ephemeral %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes ephemeral documents created before cutoff.
func (s *MongoStore) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{
		"ephemeral":  true,
		"created_at": bson.M{"$lt": cutoff.UTC()},
	})
	if err != nil {
		return 0, fmt.Errorf("gist: mongo sweep: %w", err)
	}
	return int(res.DeletedCount), nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
