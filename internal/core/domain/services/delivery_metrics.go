package services

import (
	"errors"
	"math"
	"time"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stats"
)

const (
	// ratingWindowSeconds is the delivery duration at or beyond which the
	// rating bottoms out at zero.
	ratingWindowSeconds = 3600.0

	// ratingScale is the rating granted for a near-zero delivery duration.
	ratingScale = 5.0
)

// ErrCompletionOutOfOrder is returned when a completion timestamp precedes
// the reference point of its bundle, producing a negative delivery duration.
// This indicates a caller timestamp bug and is surfaced rather than clamped.
var ErrCompletionOutOfOrder = errors.New("completion time precedes the previous completion in the bundle")

// DeliveryMetrics is a domain service that derives delivery durations and the
// courier rating from completion history.
type DeliveryMetrics struct{}

// NewDeliveryMetrics creates a new DeliveryMetrics instance.
func NewDeliveryMetrics() DeliveryMetrics {
	return DeliveryMetrics{}
}

// DeliveryDuration computes the delivery duration in seconds for an order
// completing at completeTime within the given bundle.
//
// The reference point is the completion time of the most recently completed
// sibling in the same bundle, or the bundle's assignment time when no sibling
// has completed yet. A negative result returns ErrCompletionOutOfOrder with
// no value.
func (m DeliveryMetrics) DeliveryDuration(
	inBundle *bundle.Bundle,
	siblings []*order.Order,
	completeTime time.Time,
) (float64, error) {
	if err := inBundle.Validate(); err != nil {
		return 0, err
	}

	reference := inBundle.AssignTime()
	for _, sibling := range siblings {
		if err := sibling.Validate(); err != nil {
			return 0, err
		}
		if !sibling.IsCompleted() || sibling.CompleteTime() == nil {
			continue
		}
		if sibling.CompleteTime().After(reference) {
			reference = *sibling.CompleteTime()
		}
	}

	duration := completeTime.Sub(reference).Seconds()
	if duration < 0 {
		return 0, ErrCompletionOutOfOrder
	}
	return duration, nil
}

// Rating derives the courier rating from its per-region averages.
//
// The courier is rated on its best-performing region: the minimum average
// delivery duration across all (courier, region) pairs. With no recorded
// averages the rating is zero. Otherwise the rating falls linearly from 5 at
// a near-zero duration to 0 at one hour or beyond, rounded to two decimals.
func (m DeliveryMetrics) Rating(regionStats []*stats.RegionStat) float64 {
	if len(regionStats) == 0 {
		return 0
	}

	best := math.MaxFloat64
	for _, stat := range regionStats {
		if stat.AverageSeconds() < best {
			best = stat.AverageSeconds()
		}
	}
	best = math.Min(best, ratingWindowSeconds)

	rating := (ratingWindowSeconds - best) / ratingWindowSeconds * ratingScale
	return math.Round(rating*100) / 100
}
