package order

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPendingConfirmation    Status = "pending_confirmation"
	StatusPreparing              Status = "preparing"
	StatusReadyForPickup         Status = "ready_for_pickup"
	StatusPickedUp               Status = "picked_up"
	StatusCancelledFullRefund    Status = "cancelled_full_refund"
	StatusCancelledPartialRefund Status = "cancelled_partial_refund"
	StatusCancelledNoRefund      Status = "cancelled_no_refund"
)

var ErrInvalidStatus = errors.New("invalid order status")

var statusLabels = map[Status]string{
	StatusPendingConfirmation:    "Pending Confirmation",
	StatusPreparing:              "Preparing",
	StatusReadyForPickup:         "Ready for Pickup",
	StatusPickedUp:               "Picked Up",
	StatusCancelledFullRefund:    "Cancelled (Full Refund)",
	StatusCancelledPartialRefund: "Cancelled (Partial Refund)",
	StatusCancelledNoRefund:      "Cancelled (No Refund)",
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Label returns the human readable status shown to consumers.
func (s Status) Label() string {
	return statusLabels[s]
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusPickedUp || s.IsCancelled()
}

// IsCancelled reports whether the status is one of the cancelled variants.
func (s Status) IsCancelled() bool {
	switch s {
	case StatusCancelledFullRefund, StatusCancelledPartialRefund, StatusCancelledNoRefund:
		return true
	default:
		return false
	}
}

// RefundTier returns the refund tier of a cancelled status.
func (s Status) RefundTier() (RefundTier, bool) {
	switch s {
	case StatusCancelledFullRefund:
		return RefundFull, true
	case StatusCancelledPartialRefund:
		return RefundPartial, true
	case StatusCancelledNoRefund:
		return RefundNone, true
	default:
		return "", false
	}
}

// Progress returns the completion percentage displayed for the status.
func (s Status) Progress() int {
	switch s {
	case StatusPendingConfirmation:
		return 25
	case StatusPreparing:
		return 60
	case StatusReadyForPickup:
		return 90
	case StatusPickedUp:
		return 100
	default:
		return 0
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusLabels[st]; !ok {
		return "", ErrInvalidStatus
	}

	return st, nil
}

// RefundTier is the refund outcome of a cancellation.
type RefundTier string

const (
	RefundFull    RefundTier = "full"
	RefundPartial RefundTier = "partial"
	RefundNone    RefundTier = "none"
)

func (t RefundTier) String() string {
	return string(t)
}

// CancelledWith returns the terminal cancelled status for the tier.
func CancelledWith(tier RefundTier) Status {
	switch tier {
	case RefundFull:
		return StatusCancelledFullRefund
	case RefundPartial:
		return StatusCancelledPartialRefund
	default:
		return StatusCancelledNoRefund
	}
}
