// Package lifecycle decides order state transitions. It never mutates orders; callers
// apply the returned Transition through the order store.
//
// Timer-driven transitions:
//
//	PendingConfirmation -> Preparing     when the time left until arrival equals prep time + buffer
//	Preparing           -> ReadyForPickup when the declared arrival instant has passed
//
// Requested transitions are Cancel, PickUp and StartCooking. Terminal states reject all of them.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
	"github.com/corray333/swiftserve/internal/service/refund"
)

// Transition is a decided change of an order's status.
type Transition struct {
	From order.Status
	To   order.Status
	// TriggerCooking marks the one-time flip of Order.CookingTriggered.
	TriggerCooking bool
	// Refund is set for cancellations.
	Refund order.RefundTier
}

// CookingTriggerAt returns the instant the kitchen should start cooking o.
//
// When the consumer's declared arrival is not further away than prep time plus buffer,
// there is no slack to wait for and cooking starts at booking.
func CookingTriggerAt(o order.Order) time.Time {
	arrivalOffset := time.Duration(o.UserEstimatedArrivalTime) * time.Minute
	mealPrepOffset := time.Duration(o.PrepTime+order.MealReadyBuffer) * time.Minute

	if arrivalOffset <= mealPrepOffset {
		return o.BookingTime
	}

	return o.BookingTime.Add(arrivalOffset - mealPrepOffset)
}

// Evaluate returns the timer-driven transition that is due for o at now, if any.
// At most one transition is returned per call; evaluating again after applying it
// moves the order on by one more step at most.
func Evaluate(o order.Order, now time.Time) (Transition, bool) {
	switch o.Status {
	case order.StatusPendingConfirmation:
		if o.CookingTriggered || now.Before(CookingTriggerAt(o)) {
			return Transition{}, false
		}

		return Transition{
			From:           o.Status,
			To:             order.StatusPreparing,
			TriggerCooking: true,
		}, true
	case order.StatusPreparing:
		if !o.CookingTriggered || now.Before(o.ArrivalAt()) {
			return Transition{}, false
		}

		return Transition{From: o.Status, To: order.StatusReadyForPickup}, true
	default:
		return Transition{}, false
	}
}

// Cancel decides the cancellation of o at now, resolving its refund tier.
func Cancel(o order.Order, now time.Time) (Transition, error) {
	tier, err := refund.Resolve(o, now)
	if err != nil {
		return Transition{}, err
	}

	return Transition{
		From:   o.Status,
		To:     order.CancelledWith(tier),
		Refund: tier,
	}, nil
}

// PickUp decides the hand-over of a ready order to the consumer.
func PickUp(o order.Order) (Transition, error) {
	if o.Status != order.StatusReadyForPickup {
		return Transition{}, fmt.Errorf("%w: order %s is %s, not ready for pickup", errs.ErrInvalidTransition, o.ID, o.Status)
	}

	return Transition{From: o.Status, To: order.StatusPickedUp}, nil
}

// StartCooking is the manual override of the cooking trigger.
func StartCooking(o order.Order) (Transition, error) {
	if o.Status != order.StatusPendingConfirmation || o.CookingTriggered {
		return Transition{}, fmt.Errorf("%w: cooking for order %s cannot start from %s", errs.ErrInvalidTransition, o.ID, o.Status)
	}

	return Transition{
		From:           o.Status,
		To:             order.StatusPreparing,
		TriggerCooking: true,
	}, nil
}

// Apply returns o with the transition applied. Timing snapshots are left untouched.
func Apply(o order.Order, t Transition) order.Order {
	o.Status = t.To
	if t.TriggerCooking {
		o.CookingTriggered = true
	}

	return o
}
