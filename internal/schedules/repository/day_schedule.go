package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleerrors "classbook/internal/schedules/errors"
	"classbook/pkg/config"
	mongotx "classbook/pkg/db/mongo"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Day_schedules"
)

type mongoDayScheduleRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type DayScheduleRepository interface {
	FindByKey(ctx context.Context, key string) (*model.DaySchedule, error)
	FindByDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error)
	SetOpenStartTimes(ctx context.Context, day *model.DaySchedule) error
	ReserveGranules(ctx context.Context, key string, granules []string) error
	ReleaseGranules(ctx context.Context, key string, granules []string) error
	ListByLecturer(ctx context.Context, lecturerID string, limit int, offset int64) ([]*model.DaySchedule, error)
	CountByLecturer(ctx context.Context, lecturerID string) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoDayScheduleRepository(cfg *config.Config) DayScheduleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDayScheduleRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoDayScheduleRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining > timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDayScheduleRepository) FindByKey(ctx context.Context, key string) (*model.DaySchedule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var day model.DaySchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", scheduleerrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to find day schedule: %w", err)
	}

	return &day, nil
}

func (r *mongoDayScheduleRepository) FindByDay(ctx context.Context, courseID, lecturerID, date string) (*model.DaySchedule, error) {
	return r.FindByKey(ctx, model.DayKey(courseID, lecturerID, date))
}

// SetOpenStartTimes writes the day's open start times, creating the document
// on first write. The filter only matches a document with no booked granules,
// so a locked day is never updated. When the day exists and is locked the
// upsert falls through to an insert with the same _id, which fails with a
// duplicate key error; that error is the lock signal.
func (r *mongoDayScheduleRepository) SetOpenStartTimes(ctx context.Context, day *model.DaySchedule) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	key := day.Key()
	now := time.Now().UTC().Truncate(time.Millisecond)

	filter := bson.M{
		"_id":             key,
		"booked_granules": bson.M{"$size": 0},
	}
	update := bson.M{
		"$set": bson.M{
			"open_start_times": day.OpenStartTimes,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"course_id":       day.CourseID,
			"lecturer_id":     day.LecturerID,
			"date":            day.Date,
			"booked_granules": []string{},
			"created_at":      now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to set open start times: %w", err)
		}
		// Two first-time writes for the same day can both miss the filter and
		// race the insert; the loser's duplicate key does not prove the day
		// is booked. Retry the conditional update against the document that
		// now exists before reporting the lock.
		retry, retryErr := r.collection.UpdateOne(ctx, filter, update)
		if retryErr != nil {
			return fmt.Errorf("failed to set open start times: %w", retryErr)
		}
		if retry.MatchedCount == 0 {
			return fmt.Errorf("%w: %s", scheduleerrors.ErrScheduleLocked, key)
		}
	}

	day.ID = key
	day.UpdatedAt = now
	return nil
}

// ReserveGranules marks granules as booked with a single conditional update.
// The filter only matches when none of the requested granules are already in
// booked_granules, so two concurrent reservations for overlapping granules
// can never both succeed.
func (r *mongoDayScheduleRepository) ReserveGranules(ctx context.Context, key string, granules []string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":             key,
		"booked_granules": bson.M{"$nin": granules},
	}
	update := bson.M{
		"$addToSet": bson.M{
			"booked_granules": bson.M{"$each": granules},
		},
		"$set": bson.M{
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve granules: %w", err)
	}

	if result.MatchedCount == 0 {
		// The filter misses both when the day does not exist and when a
		// granule is taken. Re-read to report the right error.
		if _, findErr := r.FindByKey(ctx, key); findErr != nil {
			if errors.Is(findErr, scheduleerrors.ErrNotFound) {
				return findErr
			}
			return fmt.Errorf("failed to reserve granules: %w", findErr)
		}
		return fmt.Errorf("%w: %s", scheduleerrors.ErrGranuleConflict, key)
	}

	return nil
}

// ReleaseGranules removes granules from the booked set. Releasing granules
// that are not booked is a no-op, so releases are idempotent.
func (r *mongoDayScheduleRepository) ReleaseGranules(ctx context.Context, key string, granules []string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"_id": key}
	update := bson.M{
		"$pullAll": bson.M{
			"booked_granules": granules,
		},
		"$set": bson.M{
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to release granules: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", scheduleerrors.ErrNotFound, key)
	}
	return nil
}

func (r *mongoDayScheduleRepository) ListByLecturer(ctx context.Context, lecturerID string, limit int, offset int64) ([]*model.DaySchedule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"lecturer_id": lecturerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query day schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var days []*model.DaySchedule
	if err = cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode day schedules: %w", err)
	}
	return days, nil
}

func (r *mongoDayScheduleRepository) CountByLecturer(ctx context.Context, lecturerID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"lecturer_id": lecturerID})
	if err != nil {
		return 0, fmt.Errorf("failed to count day schedules: %w", err)
	}
	return count, nil
}

func (r *mongoDayScheduleRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
