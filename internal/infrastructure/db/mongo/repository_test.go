package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

func duplicateKey() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

	mt.Run("create", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := repo.Create(context.Background(), &domain.User{ID: "u1", Username: "alice"}); err != nil {
			mt.Fatalf("create: %v", err)
		}
	})

	mt.Run("create duplicate username", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		err := repo.Create(context.Background(), &domain.User{ID: "u2", Username: "alice"})
		if !errors.Is(err, domain.ErrUsernameTaken) {
			mt.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})

	mt.Run("find by username", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "username", Value: "alice"},
			{Key: "password_hash", Value: "hash"},
			{Key: "daily_calorie_goal", Value: 1800},
			{Key: "created_at", Value: created},
			{Key: "updated_at", Value: created},
		}))

		u, err := repo.FindByUsername(context.Background(), "alice")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if u.ID != "u1" || u.DailyCalorieGoal != 1800 || !u.CreatedAt.Equal(created) {
			mt.Fatalf("unexpected user: %+v", u)
		}
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		if _, err := repo.FindByID(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateProfile(context.Background(), &domain.User{ID: "ghost", Username: "x", DailyCalorieGoal: 1})
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("update to taken username", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(duplicateKey())

		err := repo.UpdateProfile(context.Background(), &domain.User{ID: "u1", Username: "bob", DailyCalorieGoal: 1})
		if !errors.Is(err, domain.ErrUsernameTaken) {
			mt.Fatalf("expected ErrUsernameTaken, got %v", err)
		}
	})
}

func TestFoodLogRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ownerCount := func(n int) bson.D {
		return mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: n}})
	}
	entry := &domain.FoodLogEntry{ID: "x1", UserID: "u1", FoodName: "Apple", Calories: 95, LoggedAt: time.Now()}

	mt.Run("append", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		mt.AddMockResponses(ownerCount(1), mtest.CreateSuccessResponse())

		if err := repo.Append(context.Background(), entry); err != nil {
			mt.Fatalf("append: %v", err)
		}
	})

	mt.Run("append unknown owner", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		if err := repo.Append(context.Background(), entry); !errors.Is(err, domain.ErrNotAuthenticated) {
			mt.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	mt.Run("append duplicate id", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		mt.AddMockResponses(ownerCount(1), duplicateKey())

		if err := repo.Append(context.Background(), entry); !errors.Is(err, domain.ErrDuplicateEntry) {
			mt.Fatalf("expected ErrDuplicateEntry, got %v", err)
		}
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.food_logs", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "x2"}, {Key: "user_id", Value: "u1"}, {Key: "food_name", Value: "Salad"}, {Key: "calories", Value: 300}, {Key: "logged_at", Value: day.Add(13 * time.Hour)}},
			bson.D{{Key: "_id", Value: "x1"}, {Key: "user_id", Value: "u1"}, {Key: "food_name", Value: "Oatmeal"}, {Key: "calories", Value: 500}, {Key: "logged_at", Value: day.Add(8 * time.Hour)}},
		))

		got, err := repo.ListByOwner(context.Background(), "u1", day, day.AddDate(0, 0, 1))
		if err != nil {
			mt.Fatalf("list: %v", err)
		}
		if len(got) != 2 || got[0].ID != "x2" || got[1].Calories != 500 {
			mt.Fatalf("unexpected entries: %+v", got)
		}
	})

	mt.Run("sum calories", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.food_logs", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 700}},
		))

		total, err := repo.SumCalories(context.Background(), "u1", time.Now(), time.Now())
		if err != nil {
			mt.Fatalf("sum: %v", err)
		}
		if total != 700 {
			mt.Fatalf("expected 700, got %d", total)
		}
	})

	mt.Run("sum calories no entries", func(mt *mtest.T) {
		repo := NewFoodLogRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.food_logs", mtest.FirstBatch))

		total, err := repo.SumCalories(context.Background(), "u1", time.Now(), time.Now())
		if err != nil || total != 0 {
			mt.Fatalf("expected 0, nil; got %d, %v", total, err)
		}
	})
}
