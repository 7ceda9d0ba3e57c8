package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/market/internal/domain/models"
)

// ErrReportNotFound is returned when no report has been stored yet.
var ErrReportNotFound = errors.New("market report not found")

// Repository defines the interface for report storage.
type Repository interface {
	SaveMarketReport(ctx context.Context, report models.MarketReport) error
	LatestMarketReport(ctx context.Context, marketName string) (models.MarketReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "market_reports",
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveMarketReport saves a market report to the database.
func (r *MongoDBRepository) SaveMarketReport(ctx context.Context, report models.MarketReport) error {
	_, err := r.collection().InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to insert market report: %w", err)
	}
	return nil
}

// LatestMarketReport returns the most recently generated report for marketName.
func (r *MongoDBRepository) LatestMarketReport(ctx context.Context, marketName string) (models.MarketReport, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})

	var report models.MarketReport
	err := r.collection().FindOne(ctx, bson.M{"market_name": marketName}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MarketReport{}, ErrReportNotFound
	}
	if err != nil {
		return models.MarketReport{}, fmt.Errorf("failed to find latest market report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
