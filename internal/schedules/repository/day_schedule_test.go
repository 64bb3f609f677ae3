package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	scheduleerrors "classbook/internal/schedules/errors"
	"classbook/pkg/client"
	"classbook/pkg/config"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testConfig(c *client.Client) *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	return &config.Config{
		Log:               log,
		MongoDatabaseName: "classbook_test",
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		Client:            c,
	}
}

func testDay() *model.DaySchedule {
	return &model.DaySchedule{
		CourseID:       "pte-speaking",
		LecturerID:     "lect-042",
		Date:           "2025-03-14",
		OpenStartTimes: []string{"09:00 AM"},
	}
}

func TestSetOpenStartTimes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first write succeeds", func(mt *mtest.T) {
		repo := NewMongoDayScheduleRepository(testConfig(&client.Client{Mongo: mt.Client}))

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		day := testDay()
		if err := repo.SetOpenStartTimes(context.Background(), day); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if day.ID != "pte-speaking:lect-042:2025-03-14" {
			t.Errorf("expected day key assigned as id, got %q", day.ID)
		}
	})

	mt.Run("concurrent first write loses insert race but still applies", func(mt *mtest.T) {
		repo := NewMongoDayScheduleRepository(testConfig(&client.Client{Mongo: mt.Client}))

		// The racing writer inserted the document first; the duplicate key
		// must not be reported as a lock when the retry matches the
		// unbooked day.
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		if err := repo.SetOpenStartTimes(context.Background(), testDay()); err != nil {
			t.Fatalf("expected retry to succeed, got error: %v", err)
		}
	})

	mt.Run("booked day reports schedule locked", func(mt *mtest.T) {
		repo := NewMongoDayScheduleRepository(testConfig(&client.Client{Mongo: mt.Client}))

		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		err := repo.SetOpenStartTimes(context.Background(), testDay())
		if !errors.Is(err, scheduleerrors.ErrScheduleLocked) {
			t.Fatalf("expected ErrScheduleLocked, got %v", err)
		}
	})
}
