package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trendwatch/app/analyzer"
)

const mongoOpTimeout = 10 * time.Second

var _ Store = (*MongoStore)(nil)

// MongoStore persists checkpoints and results in a remote document
// database, one document per checkpoint/result.
type MongoStore struct {
	client      *mongo.Client
	checkpoints *mongo.Collection
	results     *mongo.Collection
}

type checkpointDoc struct {
	ID         string     `bson:"_id"`
	Checkpoint Checkpoint `bson:"data"`
	CreatedAt  time.Time  `bson:"created_at"`
}

type resultDoc struct {
	ID             string            `bson:"_id"`
	Shorts         []analyzer.Record `bson:"shorts"`
	Regular        []analyzer.Record `bson:"regular"`
	CategoryCounts map[string]int    `bson:"category_counts"`
	CreatedAt      time.Time         `bson:"created_at"`
}

func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &MongoStore{
		client:      client,
		checkpoints: db.Collection("checkpoints"),
		results:     db.Collection("analysis_results"),
	}, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoOpTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) SaveCheckpoint(ctx context.Context, cp Checkpoint) (string, error) {
	doc := checkpointDoc{
		ID:         uuid.New().String(),
		Checkpoint: cp,
		CreatedAt:  cp.CreatedAt,
	}

	if _, err := s.checkpoints.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return doc.ID, nil
}

func (s *MongoStore) LoadLatestCheckpoint(ctx context.Context) (*Checkpoint, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc checkpointDoc
	err := s.checkpoints.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	return &doc.Checkpoint, nil
}

func (s *MongoStore) ClearCheckpoints(ctx context.Context) error {
	if _, err := s.checkpoints.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear checkpoints: %w", err)
	}
	return nil
}

func (s *MongoStore) SaveResult(ctx context.Context, result *analyzer.Result) (string, error) {
	doc := resultDoc{
		ID:             uuid.New().String(),
		Shorts:         result.Shorts,
		Regular:        result.Regular,
		CategoryCounts: result.CategoryCounts,
		CreatedAt:      time.Now().UTC(),
	}

	if _, err := s.results.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to save analysis result: %w", err)
	}
	return doc.ID, nil
}

func (s *MongoStore) GetResult(ctx context.Context, id string) (*analyzer.Result, error) {
	var doc resultDoc
	err := s.results.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis result: %w", err)
	}
	return doc.toResult(), nil
}

func (s *MongoStore) GetLatestResult(ctx context.Context) (*analyzer.Result, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc resultDoc
	err := s.results.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis result: %w", err)
	}
	return doc.toResult(), nil
}

func (d *resultDoc) toResult() *analyzer.Result {
	return &analyzer.Result{
		Shorts:         d.Shorts,
		Regular:        d.Regular,
		CategoryCounts: d.CategoryCounts,
	}
}
