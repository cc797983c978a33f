package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/justify/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "justify"
	DefaultMongoCollection = "galleries"
	DefaultMongoTimeout    = 10 * time.Second
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore keeps galleries in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to MongoDB, verifies the connection and ensures the
// created_at index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo uri is required")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultMongoTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongo")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create index")
	}

	return &MongoStore{client: client, coll: coll, now: time.Now}, nil
}

// Create implements Store.
func (s *MongoStore) Create(ctx context.Context, g Gallery) (Gallery, error) {
	g, err := prepare(g, s.now())
	if err != nil {
		return Gallery{}, err
	}
	if _, err := s.coll.InsertOne(ctx, g); err != nil {
		return Gallery{}, errors.Wrap(errors.ErrCodeInternal, err, "insert gallery")
	}
	return g, nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (Gallery, error) {
	if err := errors.ValidateGalleryID(id); err != nil {
		return Gallery{}, err
	}

	var g Gallery
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return Gallery{}, notFound(id)
	}
	if err != nil {
		return Gallery{}, errors.Wrap(errors.ErrCodeInternal, err, "find gallery %s", id)
	}
	return g, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Gallery, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list galleries")
	}
	galleries := []Gallery{}
	if err := cur.All(ctx, &galleries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode galleries")
	}
	return galleries, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateGalleryID(id); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete gallery %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
