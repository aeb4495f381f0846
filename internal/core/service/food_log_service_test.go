package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

func newFoodLogSvc() (*FoodLogService, *stubFoodLogRepo, *stubUserRepo) {
	logs := newStubFoodLogRepo()
	users := newStubUserRepo()
	users.seed("u1", "alice", 2000)
	users.seed("u2", "bob", 2000)
	return NewFoodLogService(logs, users, zerolog.Nop()), logs, users
}

func TestFoodLogService_Log_Success(t *testing.T) {
	svc, logs, _ := newFoodLogSvc()
	at := time.Date(2024, 5, 6, 12, 30, 0, 0, time.Local)

	entry, err := svc.Log(context.Background(), ports.LogFoodInput{
		ID: "x1", UserID: "u1", FoodName: " Oatmeal ", Calories: 500, LoggedAt: at,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.FoodName != "Oatmeal" || entry.CreatedAt.IsZero() {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if _, ok := logs.entries["x1"]; !ok {
		t.Fatal("entry not stored")
	}
}

func TestFoodLogService_Log_DuplicateID(t *testing.T) {
	svc, _, _ := newFoodLogSvc()
	in := ports.LogFoodInput{ID: "x1", UserID: "u1", FoodName: "Apple", Calories: 95, LoggedAt: time.Now()}

	if _, err := svc.Log(context.Background(), in); err != nil {
		t.Fatalf("first log failed: %v", err)
	}
	in.UserID = "u2"
	if _, err := svc.Log(context.Background(), in); !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", err)
	}
}

func TestFoodLogService_Log_UnknownOwner(t *testing.T) {
	svc, logs, _ := newFoodLogSvc()

	_, err := svc.Log(context.Background(), ports.LogFoodInput{ID: "x1", UserID: "ghost", FoodName: "Apple", LoggedAt: time.Now()})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if len(logs.entries) != 0 {
		t.Fatal("nothing should be stored for an unknown owner")
	}

	if _, err := svc.Log(context.Background(), ports.LogFoodInput{ID: "x1", FoodName: "Apple", LoggedAt: time.Now()}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for empty user, got %v", err)
	}
}

func TestFoodLogService_Log_Validation(t *testing.T) {
	svc, _, _ := newFoodLogSvc()

	_, err := svc.Log(context.Background(), ports.LogFoodInput{UserID: "u1", Calories: -5})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Problems) != 4 {
		t.Fatalf("expected 4 problems, got %v", ve.Problems)
	}
	if ve.Problems[1] != "foodName is required" {
		t.Fatalf("problems should use request field names, got %q", ve.Problems[1])
	}
}

func TestFoodLogService_ListForDay(t *testing.T) {
	svc, logs, _ := newFoodLogSvc()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.Local)

	seed := []domain.FoodLogEntry{
		{ID: "before", UserID: "u1", Calories: 1, LoggedAt: day.Add(-time.Second)},
		{ID: "midnight", UserID: "u1", Calories: 2, LoggedAt: day},
		{ID: "noon", UserID: "u1", Calories: 3, LoggedAt: day.Add(12 * time.Hour)},
		{ID: "late", UserID: "u1", Calories: 4, LoggedAt: day.Add(24*time.Hour - time.Second)},
		{ID: "next", UserID: "u1", Calories: 5, LoggedAt: day.Add(24 * time.Hour)},
		{ID: "other-user", UserID: "u2", Calories: 6, LoggedAt: day.Add(time.Hour)},
	}
	for _, e := range seed {
		logs.entries[e.ID] = e
	}

	got, err := svc.ListForDay(context.Background(), "u1", day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"late", "noon", "midnight"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("entry %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestFoodLogService_ListForDay_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := newFoodLogSvc()

	got, err := svc.ListForDay(context.Background(), "u1", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
