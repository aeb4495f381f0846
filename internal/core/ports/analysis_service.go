package ports

import (
	"context"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// AnalyzeFoodInput carries the raw payload of an analysis request.
type AnalyzeFoodInput struct {
	UserID      string
	ImageBase64 string
	Depth       []float64
}

type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeFoodInput) (*domain.FoodAnalysis, error)
}

// CompletionRequest is one chat exchange with the language model. ImagePNG,
// when set, is attached to the user message.
type CompletionRequest struct {
	System   string
	User     string
	ImagePNG []byte
}

// ChatCompleter is the external language model.
type ChatCompleter interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// QuotaLimiter caps how many analyses a user may run per window.
type QuotaLimiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}
