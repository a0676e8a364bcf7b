package repositories

import (
	"context"
	"time"

	"github.com/vibewham/vibe-wham/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReportRepository defines the interface for report data operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	ListByTarget(ctx context.Context, targetType, targetID string) ([]models.Report, error)
}

// MongoReportRepository implements ReportRepository on a MongoDB collection.
// Reports are an append-only log: no deduplication, no updates, no deletes.
type MongoReportRepository struct {
	collection *mongo.Collection
}

// NewMongoReportRepository creates a new MongoReportRepository
func NewMongoReportRepository(db *mongo.Database) *MongoReportRepository {
	return &MongoReportRepository{collection: db.Collection("reports")}
}

// Create appends a report unconditionally. Callers verify the target in the
// relational store first; that check does not share a transaction with this
// insert, so the log may hold reports against since-removed targets.
func (r *MongoReportRepository) Create(ctx context.Context, report *models.Report) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// ListByTarget retrieves all reports filed against one target, oldest first.
// Used by moderation tooling reading the log; this service never consumes it.
func (r *MongoReportRepository) ListByTarget(ctx context.Context, targetType, targetID string) ([]models.Report, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"target_type": targetType, "target_id": targetID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
