// Package refund decides the refund tier of a cancellation request.
package refund

import (
	"fmt"
	"time"

	"github.com/corray333/swiftserve/internal/service/models/errs"
	"github.com/corray333/swiftserve/internal/service/models/order"
)

// FullRefundWindow is how long after booking a pending order can be cancelled for a full refund.
const FullRefundWindow = 2 * time.Minute

// Resolve returns the refund tier for cancelling o at now.
//
// Pending orders get a full refund inside the window and no refund after it. Orders
// that are being prepared get a partial refund. Anything later cannot be cancelled.
func Resolve(o order.Order, now time.Time) (order.RefundTier, error) {
	switch o.Status {
	case order.StatusPendingConfirmation:
		if !now.After(o.BookingTime.Add(FullRefundWindow)) {
			return order.RefundFull, nil
		}

		return order.RefundNone, nil
	case order.StatusPreparing:
		return order.RefundPartial, nil
	case order.StatusReadyForPickup:
		return "", fmt.Errorf("%w: order %s is ready for pickup", errs.ErrCancellationUnavailable, o.ID)
	default:
		return "", fmt.Errorf(
			"%w: %w: order %s is %s",
			errs.ErrCancellationUnavailable, errs.ErrInvalidTransition, o.ID, o.Status,
		)
	}
}

// WindowRemaining returns how much of the full-refund window is left, or zero when the
// window is closed or the order is no longer pending.
func WindowRemaining(o order.Order, now time.Time) time.Duration {
	if o.Status != order.StatusPendingConfirmation {
		return 0
	}

	remaining := o.BookingTime.Add(FullRefundWindow).Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}
