package timing

import (
	"fmt"
	"math"
	"time"
)

// alignmentWindow is the tolerance between arrival and meal readiness.
const alignmentWindow = 5 * time.Minute

// AlignmentKind describes how the meal-ready instant relates to the arrival instant.
type AlignmentKind string

const (
	AlignmentAligned   AlignmentKind = "aligned"
	AlignmentMealLate  AlignmentKind = "meal_late"
	AlignmentMealEarly AlignmentKind = "meal_early"
)

// Alignment is the advisory shown next to an active order.
type Alignment struct {
	Kind    AlignmentKind `json:"kind"`
	Minutes int           `json:"minutes"`
	Message string        `json:"message"`
}

// Align compares the consumer's arrival with the meal-ready estimate, both given as
// minute offsets from booking.
func Align(arrivalMinutes, mealReadyMinutes int) Alignment {
	diff := time.Duration(mealReadyMinutes-arrivalMinutes) * time.Minute
	minutes := int(math.Round(math.Abs(diff.Minutes())))

	switch {
	case diff > alignmentWindow:
		return Alignment{
			Kind:    AlignmentMealLate,
			Minutes: minutes,
			Message: fmt.Sprintf("Heads up! Your meal might be ready about %d minutes after your ETA.", minutes),
		}
	case diff < -alignmentWindow:
		return Alignment{
			Kind:    AlignmentMealEarly,
			Minutes: minutes,
			Message: fmt.Sprintf("Your meal is on track to be ready about %d minutes before your ETA.", minutes),
		}
	default:
		return Alignment{
			Kind:    AlignmentAligned,
			Minutes: minutes,
			Message: "Excellent timing! Your meal should be ready right around your arrival.",
		}
	}
}
