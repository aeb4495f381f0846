package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

// FoodLogRepository implements ports.FoodLogRepository using MongoDB. The
// client-chosen entry ID is the document _id.
type FoodLogRepository struct {
	col   *mongo.Collection
	users *mongo.Collection
}

func NewFoodLogRepository(db *mongo.Database) ports.FoodLogRepository {
	return &FoodLogRepository{
		col:   db.Collection(collectionFoodLogs),
		users: db.Collection(collectionUsers),
	}
}

type foodLogDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	FoodName  string    `bson:"food_name"`
	Calories  int       `bson:"calories"`
	LoggedAt  time.Time `bson:"logged_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// Append inserts the entry after confirming the owner exists.
func (r *FoodLogRepository) Append(ctx context.Context, e *domain.FoodLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.users.CountDocuments(ctx, bson.M{"_id": e.UserID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("check food log owner: %w", err)
	}
	if n == 0 {
		return domain.ErrNotAuthenticated
	}

	_, err = r.col.InsertOne(ctx, foodLogDoc{
		ID:        e.ID,
		UserID:    e.UserID,
		FoodName:  e.FoodName,
		Calories:  e.Calories,
		LoggedAt:  e.LoggedAt,
		CreatedAt: e.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert food log: %w", err)
	}
	return nil
}

func ownerWindow(userID string, from, to time.Time) bson.M {
	return bson.M{
		"user_id":   userID,
		"logged_at": bson.M{"$gte": from, "$lt": to},
	}
}

func (r *FoodLogRepository) ListByOwner(ctx context.Context, userID string, from, to time.Time) ([]domain.FoodLogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "logged_at", Value: -1}})
	cursor, err := r.col.Find(ctx, ownerWindow(userID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []foodLogDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode food logs: %w", err)
	}

	out := make([]domain.FoodLogEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.FoodLogEntry{
			ID:        d.ID,
			UserID:    d.UserID,
			FoodName:  d.FoodName,
			Calories:  d.Calories,
			LoggedAt:  d.LoggedAt.In(time.Local),
			CreatedAt: d.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *FoodLogRepository) SumCalories(ctx context.Context, userID string, from, to time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerWindow(userID, from, to)}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$calories"}}}},
	}
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum calories: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("decode calorie sum: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}
