package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/repository"
)

const reportsCollection = "gva_reports"

// MongoDBRepository stores GVA reports in a MongoDB collection keyed by
// report id.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
}

// NewMongoDBRepository connects, pings and prepares the report collection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		disconnect(client, logger)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	r := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: reportsCollection,
		logger:   logger,
	}

	index := mongo.IndexModel{
		Keys: bson.D{{Key: "author.id", Value: 1}, {Key: "created_at", Value: -1}},
	}
	if _, err := r.collection().Indexes().CreateOne(ctx, index); err != nil {
		disconnect(client, logger)
		return nil, fmt.Errorf("failed to create report index: %w", err)
	}

	return r, nil
}

// disconnect releases a client whose setup failed. The caller's context may
// already be expired, so it uses its own deadline.
func disconnect(client *mongo.Client, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warn("failed to disconnect mongodb client", zap.Error(err))
	}
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Save inserts the report as a single document.
func (r *MongoDBRepository) Save(ctx context.Context, report models.Report) (string, error) {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return "", fmt.Errorf("failed to insert gva report: %w", err)
	}
	r.logger.Debug("gva report inserted", zap.String("report_id", report.ID))
	return report.ID, nil
}

// Get loads one report by id.
func (r *MongoDBRepository) Get(ctx context.Context, id string) (models.Report, error) {
	var report models.Report
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("failed to load gva report %s: %w", id, err)
	}
	return report, nil
}

// List returns matching reports sorted by creation time, newest first.
func (r *MongoDBRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	query := bson.M{}
	if filter.AuthorID != "" {
		query["author.id"] = filter.AuthorID
	}
	if !filter.Since.IsZero() {
		query["created_at"] = bson.M{"$gte": filter.Since}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(filter.EffectiveLimit()))

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query gva reports: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	reports := make([]models.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode gva reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
