// Package docstore is the remote document store holding the shared
// community feed.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobconnect/internal/config"
	"jobconnect/internal/domain/post"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrUnavailable = errors.New("remote store unavailable")

type MongoPostStore struct {
	client  *mongo.Client
	posts   *mongo.Collection
	timeout time.Duration
	logger  *log.Logger
}

// Connect opens the remote store. An empty URI yields a store whose every
// call fails with ErrUnavailable, so the service runs local-only.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *log.Logger) (*MongoPostStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &MongoPostStore{timeout: timeout, logger: logger}

	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return s, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	s.client = client
	s.posts = client.Database(cfg.Database).Collection(cfg.PostsCollection)

	idxCtx, idxCancel := context.WithTimeout(ctx, timeout)
	defer idxCancel()
	_, err = s.posts.Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil && logger != nil {
		logger.Printf("[DocStore] Index creation failed collection=%s err=%v", cfg.PostsCollection, err)
	}

	return s, nil
}

func (s *MongoPostStore) Available() bool {
	return s != nil && s.posts != nil
}

func (s *MongoPostStore) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *MongoPostStore) ListPosts(ctx context.Context, limit int) ([]post.Post, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}
	if limit <= 0 {
		limit = 100
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	out := make([]post.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toPost())
	}
	return out, nil
}

func (s *MongoPostStore) GetPost(ctx context.Context, id string) (post.Post, error) {
	if !s.Available() {
		return post.Post{}, ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return post.Post{}, post.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var d postDocument
	if err := s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, fmt.Errorf("find post: %w", err)
	}
	return d.toPost(), nil
}

func (s *MongoPostStore) CreatePost(ctx context.Context, p post.Post) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.posts.InsertOne(ctx, fromPost(p))
	if err != nil {
		return "", fmt.Errorf("insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert post: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoPostStore) UpdateLikes(ctx context.Context, id string, likes int, likedBy string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return post.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	likers := post.ParseLikers(likedBy)
	if likers == nil {
		likers = []string{}
	}
	res, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"likes": likes, "likedBy": likers}},
	)
	if err != nil {
		return fmt.Errorf("update likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (s *MongoPostStore) DeletePost(ctx context.Context, id string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return post.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return post.ErrNotFound
	}
	return nil
}

// WatchPosts streams changes on the posts collection to fn until ctx is
// cancelled. Change streams need a replica set; the error from opening the
// stream is returned as is.
func (s *MongoPostStore) WatchPosts(ctx context.Context, fn func(context.Context, post.Change)) error {
	if !s.Available() {
		return ErrUnavailable
	}

	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.posts.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("watch posts: %w", err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var ev changeEvent
		if err := stream.Decode(&ev); err != nil {
			if s.logger != nil {
				s.logger.Printf("[DocStore] Change decode error err=%v", err)
			}
			continue
		}
		ch, ok := ev.toChange()
		if !ok {
			continue
		}
		fn(ctx, ch)
	}

	if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch posts: %w", err)
	}
	return nil
}
