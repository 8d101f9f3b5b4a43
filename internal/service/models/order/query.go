package order

// QueryOrdersModel represents filter parameters for listing orders.
type QueryOrdersModel struct {
	ActiveOnly bool `json:"activeOnly,omitempty"`
	Limit      int  `json:"limit,omitempty"`
	Offset     int  `json:"offset,omitempty"`
}

// Apply filters and paginates orders, preserving their order.
func (q QueryOrdersModel) Apply(orders []Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		if q.ActiveOnly && o.Status.IsTerminal() {
			continue
		}
		result = append(result, o)
	}

	if q.Offset > 0 {
		if q.Offset >= len(result) {
			return []Order{}
		}
		result = result[q.Offset:]
	}

	if q.Limit > 0 && q.Limit < len(result) {
		result = result[:q.Limit]
	}

	return result
}
