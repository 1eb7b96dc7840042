package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kennelhub-session-svc/src/clients"
	"kennelhub-session-svc/src/internal/models"
)

// Repository persists cached session records. Records are never physically
// deleted here; retention is an external concern.
type Repository interface {
	// FindValid returns the most recently created active, unexpired record,
	// or nil when none exists.
	FindValid(ctx context.Context) (*models.SessionRecord, error)
	Insert(ctx context.Context, record *models.SessionRecord) error
	// InvalidateExpired flips is_active to false on every expired record and
	// returns how many records were flipped. Idempotent.
	InvalidateExpired(ctx context.Context) (int64, error)
}

type repository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) FindValid(ctx context.Context) (*models.SessionRecord, error) {
	filter := bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.M{"created_at": -1})

	var record models.SessionRecord
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithError(err).Error("Failed to find valid session")
		return nil, models.ErrStoreQuery
	}

	return &record, nil
}

func (r *repository) Insert(ctx context.Context, record *models.SessionRecord) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		logrus.WithError(err).WithField("session_id", record.SessionID).Error("Failed to insert session")
		return models.ErrStoreInsert
	}

	logrus.WithFields(logrus.Fields{
		"session_id":   record.SessionID,
		"login_method": record.LoginMethod,
		"expires_at":   record.ExpiresAt,
	}).Debug("Session record inserted")

	return nil
}

func (r *repository) InvalidateExpired(ctx context.Context) (int64, error) {
	filter := bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$lte": time.Now()},
	}
	update := bson.M{
		"$set": bson.M{"is_active": false},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).Error("Failed to invalidate expired sessions")
		return 0, models.ErrStoreUpdate
	}

	return result.ModifiedCount, nil
}
