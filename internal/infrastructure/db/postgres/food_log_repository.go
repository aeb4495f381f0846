package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

// FoodLogRepository implements ports.FoodLogRepository on the food_logs table.
type FoodLogRepository struct {
	db *sqlx.DB
}

// NewFoodLogRepository creates a new FoodLogRepository.
func NewFoodLogRepository(db *sqlx.DB) ports.FoodLogRepository {
	return &FoodLogRepository{db: db}
}

type foodLogRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	FoodName  string    `db:"food_name"`
	Calories  int       `db:"calories"`
	LoggedAt  time.Time `db:"logged_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *FoodLogRepository) Append(ctx context.Context, e *domain.FoodLogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO food_logs (id, user_id, food_name, calories, logged_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.FoodName, e.Calories, e.LoggedAt, e.CreatedAt,
	)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return domain.ErrDuplicateEntry
		case foreignKeyViolation:
			return domain.ErrNotAuthenticated
		}
		return fmt.Errorf("insert food log: %w", err)
	}
	return nil
}

func (r *FoodLogRepository) ListByOwner(ctx context.Context, userID string, from, to time.Time) ([]domain.FoodLogEntry, error) {
	var rows []foodLogRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, food_name, calories, logged_at, created_at FROM food_logs
		 WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("list food logs: %w", err)
	}

	out := make([]domain.FoodLogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.FoodLogEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			FoodName:  row.FoodName,
			Calories:  row.Calories,
			LoggedAt:  row.LoggedAt.In(time.Local),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *FoodLogRepository) SumCalories(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(calories), 0) FROM food_logs WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3`,
		userID, from, to,
	)
	if err != nil {
		return 0, fmt.Errorf("sum calories: %w", err)
	}
	return total, nil
}
