package repository

import (
	"context"
	"time"

	"classbook/pkg/config"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Booking_locks"

// BookingLockRepository provides advisory locks scoped to one day schedule.
// A TTL index on expires_at reaps locks left behind by crashed requests.
type BookingLockRepository interface {
	Acquire(ctx context.Context, dayKey, holderID string) (*model.BookingLock, error)
	Release(ctx context.Context, dayKey string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Acquire inserts the lock document. A duplicate key error means another
// request holds the day; callers detect it with mongo.IsDuplicateKeyError.
func (r *mongoBookingLockRepository) Acquire(ctx context.Context, dayKey, holderID string) (*model.BookingLock, error) {
	now := time.Now().UTC()
	lock := &model.BookingLock{
		ID:        model.BookingLockID(dayKey),
		DayKey:    dayKey,
		HolderID:  holderID,
		CreatedAt: now,
		ExpiresAt: now.Add(r.cfg.BookingLockTTL),
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, dayKey string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": model.BookingLockID(dayKey)})
	return err
}
