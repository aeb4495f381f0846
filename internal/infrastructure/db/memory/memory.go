// Package memory provides process-local repositories used for development and
// tests. Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// Store holds users and food log entries behind a single lock so that the
// owner check in Append and the user writes stay consistent.
type Store struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	byUsername map[string]string
	logs       map[string]domain.FoodLogEntry
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		byUsername: make(map[string]string),
		logs:       make(map[string]domain.FoodLogEntry),
	}
}

// Users returns the store as a ports.UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// FoodLogs returns the store as a ports.FoodLogRepository.
func (s *Store) FoodLogs() *FoodLogRepository { return &FoodLogRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.byUsername[user.Username]; taken {
		return domain.ErrUsernameTaken
	}
	r.s.users[user.ID] = *user
	r.s.byUsername[user.Username] = user.ID
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if owner, taken := r.s.byUsername[user.Username]; taken && owner != user.ID {
		return domain.ErrUsernameTaken
	}

	delete(r.s.byUsername, current.Username)
	current.Username = user.Username
	current.DailyCalorieGoal = user.DailyCalorieGoal
	current.UpdatedAt = user.UpdatedAt
	r.s.users[user.ID] = current
	r.s.byUsername[current.Username] = user.ID
	return nil
}

type FoodLogRepository struct{ s *Store }

func (r *FoodLogRepository) Append(_ context.Context, e *domain.FoodLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[e.UserID]; !ok {
		return domain.ErrNotAuthenticated
	}
	if _, exists := r.s.logs[e.ID]; exists {
		return domain.ErrDuplicateEntry
	}
	r.s.logs[e.ID] = *e
	return nil
}

func (r *FoodLogRepository) ListByOwner(_ context.Context, userID string, from, to time.Time) ([]domain.FoodLogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.FoodLogEntry, 0)
	for _, e := range r.s.logs {
		if e.UserID == userID && inRange(e.LoggedAt, from, to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LoggedAt.Equal(out[j].LoggedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	return out, nil
}

func (r *FoodLogRepository) SumCalories(_ context.Context, userID string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := 0
	for _, e := range r.s.logs {
		if e.UserID == userID && inRange(e.LoggedAt, from, to) {
			total += e.Calories
		}
	}
	return total, nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
