// Package punctuality scores how often a consumer's arrival matched meal readiness.
package punctuality

import (
	"math"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/order"
)

const (
	// onTimeWindow is the largest gap between arrival and meal readiness that counts as on time.
	onTimeWindow = 5 * time.Minute
	// oftenOnTimeThreshold is the score above which a consumer is praised.
	oftenOnTimeThreshold = 80
)

// Summary is the punctuality breakdown for a set of orders.
type Summary struct {
	Score       int  `json:"score"`
	Considered  int  `json:"considered"`
	OnTime      int  `json:"onTime"`
	OftenOnTime bool `json:"oftenOnTime"`
}

// ComputeScore returns the percentage of produced orders that were on time, in [0,100].
func ComputeScore(orders []order.Order) int {
	return Summarize(orders).Score
}

// Summarize scores orders whose meal was actually produced. The score is 0 when there
// is nothing to consider.
func Summarize(orders []order.Order) Summary {
	var s Summary
	for _, o := range orders {
		if o.Status != order.StatusReadyForPickup && o.Status != order.StatusPickedUp {
			continue
		}
		s.Considered++

		gap := o.ArrivalAt().Sub(o.MealReadyAt())
		if gap < 0 {
			gap = -gap
		}
		if gap <= onTimeWindow {
			s.OnTime++
		}
	}

	if s.Considered > 0 {
		s.Score = int(math.Round(float64(s.OnTime) / float64(s.Considered) * 100))
	}
	s.OftenOnTime = s.Score > oftenOnTimeThreshold

	return s
}
