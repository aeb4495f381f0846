package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
	"github.com/nutrilens/nutrilens-api/internal/core/ports"
	"github.com/nutrilens/nutrilens-api/internal/pkg/metrics"
)

const (
	describeSystemPrompt = "You are a computer vision system. Describe the food in this image."
	describeUserPrompt   = "Describe the food in this image, including the visible ingredients and portion size."
	estimateSystemPrompt = "You are a nutritionist analyzing food images and LiDAR data."
	estimateUserPrompt   = "Analyze this food image and estimate its calorie content. " +
		"The volume is approximately %.2f cubic centimeters. Image description: %s\n\n" +
		"Answer with the food name alone on the first line and \"Calories: <integer>\" on the second line, " +
		"then explain your estimate."
)

// AnalysisService turns a photo and depth samples into a calorie estimate using
// two sequential language model calls. Nothing is persisted.
type AnalysisService struct {
	ai    ports.ChatCompleter
	quota ports.QuotaLimiter
	log   zerolog.Logger
}

// NewAnalysisService returns an AnalysisService. quota may be nil to disable
// per-user limits.
func NewAnalysisService(ai ports.ChatCompleter, quota ports.QuotaLimiter, log zerolog.Logger) *AnalysisService {
	return &AnalysisService{ai: ai, quota: quota, log: log}
}

func (s *AnalysisService) Analyze(ctx context.Context, in ports.AnalyzeFoodInput) (*domain.FoodAnalysis, error) {
	if s.quota != nil {
		allowed, err := s.quota.Allow(ctx, in.UserID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("quota check failed, analysing anyway")
		} else if !allowed {
			metrics.AnalysesTotal.WithLabelValues("quota").Inc()
			return nil, domain.ErrQuotaExceeded
		}
	}

	pngBytes, err := decodeImage(in.ImageBase64)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	volume, err := EstimateVolume(in.Depth)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid_input").Inc()
		return nil, err
	}

	description, err := s.complete(ctx, "describe", ports.CompletionRequest{
		System:   describeSystemPrompt,
		User:     describeUserPrompt,
		ImagePNG: pngBytes,
	})
	if err != nil {
		return nil, err
	}

	analysis, err := s.complete(ctx, "estimate", ports.CompletionRequest{
		System: estimateSystemPrompt,
		User:   fmt.Sprintf(estimateUserPrompt, volume, description),
	})
	if err != nil {
		return nil, err
	}

	parsed, ok := ParseAnalysis(analysis)
	result := &domain.FoodAnalysis{
		FoodName:  parsed.FoodName,
		Calories:  parsed.Calories,
		Analysis:  analysis,
		VolumeCm3: volume,
		Fallback:  !ok,
	}

	if !ok {
		metrics.AnalysesTotal.WithLabelValues("fallback").Inc()
		s.log.Warn().Str("user_id", in.UserID).Str("analysis", truncate(analysis, 200)).Msg("analysis reply not in expected format, using fallback")
	} else {
		metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	}

	s.log.Info().
		Str("user_id", in.UserID).
		Str("food_name", result.FoodName).
		Int("calories", result.Calories).
		Float64("volume_cm3", volume).
		Msg("food analysed")

	return result, nil
}

func (s *AnalysisService) complete(ctx context.Context, step string, req ports.CompletionRequest) (string, error) {
	start := time.Now()
	text, err := s.ai.Complete(ctx, req)
	metrics.AIRequestDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("upstream_error").Inc()
		s.log.Error().Err(err).Str("step", step).Bool("retryable", domain.IsRetryable(err)).Msg("language model call failed")
		if !errors.Is(err, domain.ErrUpstreamFailure) && !domain.IsRetryable(err) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
		}
		return "", fmt.Errorf("%s: %w", step, err)
	}
	return strings.TrimSpace(text), nil
}

// decodeImage accepts plain base64 or a data URL, verifies the payload is a
// decodable image and re-encodes it as PNG for the model.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if i := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		if raw, err = base64.RawStdEncoding.DecodeString(encoded); err != nil {
			return nil, fmt.Errorf("%w: not base64", domain.ErrInvalidImage)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
