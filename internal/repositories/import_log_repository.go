package repositories

import (
	"context"
	"time"

	"github.com/visaflow/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ImportLogRepository defines the interface for import batch audit logs
type ImportLogRepository interface {
	CreateImportLog(log *models.ImportLog) error
	GetImportLogs(limit int) ([]models.ImportLog, error)
}

// MongoImportLogRepository implements ImportLogRepository for MongoDB.
// Import batches are document-shaped blobs (free-form row errors), which is
// why they live in Mongo rather than next to the relational records.
type MongoImportLogRepository struct {
	collection *mongo.Collection
}

// NewMongoImportLogRepository creates a new MongoImportLogRepository
func NewMongoImportLogRepository(db *mongo.Database) *MongoImportLogRepository {
	return &MongoImportLogRepository{collection: db.Collection("import_logs")}
}

// CreateImportLog stores one import batch outcome
func (r *MongoImportLogRepository) CreateImportLog(log *models.ImportLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// GetImportLogs returns the most recent import batches, newest first
func (r *MongoImportLogRepository) GetImportLogs(limit int) ([]models.ImportLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []models.ImportLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
