package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nutrilens/nutrilens-api/internal/api/middleware"
	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, error)
	logoutFn   func(ctx context.Context, token string) error
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
	updateFn   func(ctx context.Context, userID, username string, goal int) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID, username string, goal int) (*domain.User, error) {
	return s.updateFn(ctx, userID, username, goal)
}

type stubFoodLogService struct {
	logFn  func(ctx context.Context, in ports.LogFoodInput) (*domain.FoodLogEntry, error)
	listFn func(ctx context.Context, userID string, day time.Time) ([]domain.FoodLogEntry, error)
}

func (s *stubFoodLogService) Log(ctx context.Context, in ports.LogFoodInput) (*domain.FoodLogEntry, error) {
	return s.logFn(ctx, in)
}

func (s *stubFoodLogService) ListForDay(ctx context.Context, userID string, day time.Time) ([]domain.FoodLogEntry, error) {
	return s.listFn(ctx, userID, day)
}

type stubAnalysisService struct {
	analyzeFn func(ctx context.Context, in ports.AnalyzeFoodInput) (*domain.FoodAnalysis, error)
}

func (s *stubAnalysisService) Analyze(ctx context.Context, in ports.AnalyzeFoodInput) (*domain.FoodAnalysis, error) {
	return s.analyzeFn(ctx, in)
}

type stubInsightsService struct {
	weeklyFn func(ctx context.Context, userID string) (*domain.NutritionInsights, error)
}

func (s *stubInsightsService) Weekly(ctx context.Context, userID string) (*domain.NutritionInsights, error) {
	return s.weeklyFn(ctx, userID)
}

// newContext builds an echo context for method/target with an optional JSON
// body. A non-empty userID simulates the Auth middleware.
func newContext(method, target, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextToken, "token-"+userID)
	}
	return c, rec
}
