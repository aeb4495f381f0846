package service

import (
	"fmt"
	"math"

	"github.com/nutrilens/nutrilens-api/internal/core/domain"
)

// DepthGridColumns is the fixed row width of a depth-sample grid.
const DepthGridColumns = 256

// EstimateVolume reduces a flat depth-sample grid to an approximate volume in
// cubic centimetres: sum(samples) * (rows/1000) * (columns/1000).
//
// The samples must form complete rows of DepthGridColumns finite,
// non-negative values.
func EstimateVolume(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("%w: no samples", domain.ErrMalformedInput)
	}
	if len(samples)%DepthGridColumns != 0 {
		return 0, fmt.Errorf("%w: %d samples is not a multiple of %d", domain.ErrMalformedInput, len(samples), DepthGridColumns)
	}

	var sum float64
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return 0, fmt.Errorf("%w: sample %d is %v", domain.ErrMalformedInput, i, v)
		}
		sum += v
	}

	rows := len(samples) / DepthGridColumns
	return sum * (float64(rows) / 1000) * (float64(DepthGridColumns) / 1000), nil
}
