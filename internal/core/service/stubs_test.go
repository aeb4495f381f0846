package service

import (
	"context"
	"sort"
	"time"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) seed(id, username string, goal int) {
	r.byID[id] = &domain.User{ID: id, Username: username, DailyCalorieGoal: goal}
}

type stubFoodLogRepo struct {
	entries   map[string]domain.FoodLogEntry
	appendErr error
	sumErr    error
	sumCalls  int
}

func newStubFoodLogRepo() *stubFoodLogRepo {
	return &stubFoodLogRepo{entries: make(map[string]domain.FoodLogEntry)}
}

func (r *stubFoodLogRepo) Append(_ context.Context, e *domain.FoodLogEntry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	if _, exists := r.entries[e.ID]; exists {
		return domain.ErrDuplicateEntry
	}
	r.entries[e.ID] = *e
	return nil
}

// ListByOwner applies the same filter and ordering the real stores use.
func (r *stubFoodLogRepo) ListByOwner(_ context.Context, userID string, from, to time.Time) ([]domain.FoodLogEntry, error) {
	var out []domain.FoodLogEntry
	for _, e := range r.entries {
		if e.UserID == userID && !e.LoggedAt.Before(from) && e.LoggedAt.Before(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return out, nil
}

func (r *stubFoodLogRepo) SumCalories(ctx context.Context, userID string, from, to time.Time) (int, error) {
	r.sumCalls++
	if r.sumErr != nil {
		return 0, r.sumErr
	}
	entries, _ := r.ListByOwner(ctx, userID, from, to)
	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	return total, nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type stubChat struct {
	replies  []string
	errs     []error
	requests []ports.CompletionRequest
}

func (c *stubChat) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	i := len(c.requests)
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.replies) {
		return c.replies[i], nil
	}
	return "", nil
}

type stubQuota struct {
	allowed bool
	err     error
	calls   int
}

func (q *stubQuota) Allow(_ context.Context, _ string) (bool, error) {
	q.calls++
	return q.allowed, q.err
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[id] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[id]
	return ok, nil
}
