// Package timing converts restaurant prep time and a consumer's declared travel time
// into booking feasibility and a meal-ready estimate. Everything here is pure.
package timing

import (
	"fmt"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
)

// lateArrivalTolerance is how long after the meal is ready an arrival still counts as fresh.
const lateArrivalTolerance = 15

// Verdict classifies a consumer's travel time against the kitchen timeline.
type Verdict string

const (
	VerdictGoodTiming Verdict = "good_timing"
	VerdictTooEarly   Verdict = "too_early"
	VerdictTooLate    Verdict = "too_late"
)

func (v Verdict) String() string {
	return string(v)
}

// Evaluation is the outcome of EvaluateBooking.
type Evaluation struct {
	MealReadyTime int     `json:"mealReadyTime"`
	CanBook       bool    `json:"canBook"`
	Verdict       Verdict `json:"verdict"`
	Message       string  `json:"message"`
	// WaitMinutes is set for VerdictTooEarly only.
	WaitMinutes int `json:"waitMinutes,omitempty"`
}

// MealReadyTime returns the canonical meal-ready offset in minutes for a prep time.
func MealReadyTime(prepTime int) int {
	return prepTime + order.MealReadyBuffer
}

// EvaluateBooking decides whether a booking with the given travel time can be placed.
// A too-late arrival is still bookable; only a too-early arrival blocks the booking.
func EvaluateBooking(prepTime, travelMinutes int) (Evaluation, error) {
	if travelMinutes <= 0 {
		return Evaluation{
			CanBook: false,
			Message: "Please enter a valid arrival time.",
		}, fmt.Errorf("%w: arrival time must be a positive number of minutes", errs.ErrInvalidInput)
	}
	if prepTime < 0 {
		return Evaluation{CanBook: false}, fmt.Errorf("%w: prep time must not be negative", errs.ErrInvalidInput)
	}

	mealReady := MealReadyTime(prepTime)
	eval := Evaluation{MealReadyTime: mealReady}

	// travel < prep - buffer/2, kept in integers.
	switch {
	case 2*travelMinutes < 2*prepTime-order.MealReadyBuffer:
		eval.Verdict = VerdictTooEarly
		eval.WaitMinutes = mealReady - travelMinutes
		eval.Message = fmt.Sprintf(
			"You might arrive too early. Meal needs ~%d mins. Consider arriving in %d more mins.",
			mealReady, eval.WaitMinutes,
		)
	case travelMinutes > mealReady+lateArrivalTolerance:
		eval.Verdict = VerdictTooLate
		eval.CanBook = true
		eval.Message = fmt.Sprintf(
			"You might arrive too late. Meal will be ready in ~%d mins. Food might not be fresh.",
			mealReady,
		)
	default:
		eval.Verdict = VerdictGoodTiming
		eval.CanBook = true
		eval.Message = "Perfect timing! Your meal will be fresh. Estimated ready around your arrival."
	}

	return eval, nil
}
