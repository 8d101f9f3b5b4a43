package auditlog

import "time"

// OrderTransition represents an audit entry for an applied order status change.
type OrderTransition struct {
	OrderID          string    `json:"order_id"`
	RestaurantID     string    `json:"restaurant_id"`
	OldStatus        string    `json:"old_status"`
	NewStatus        string    `json:"new_status"`
	CookingTriggered bool      `json:"cooking_triggered"`
	ChangedBy        string    `json:"changed_by"`
	Timestamp        time.Time `json:"timestamp"`
}
