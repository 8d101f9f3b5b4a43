package timing

import "github.com/corray333/swiftserve/internal/service/models/order"

// minutesPerKm is the simplified travel speed used for browsing estimates.
const minutesPerKm = 2

// DistanceClass is an advisory classification of a restaurant for browsing.
// It never gates a booking.
type DistanceClass struct {
	Suitable bool    `json:"suitable"`
	Label    string  `json:"label"`
	ETA      float64 `json:"eta"`
}

// ClassifyDistance estimates the meal ETA for a restaurant at distance km and labels
// whether the distance suits just-in-time preparation.
func ClassifyDistance(distance float64, prepTime int) DistanceClass {
	eta := distance*minutesPerKm + float64(prepTime+order.MealReadyBuffer)

	switch {
	case distance <= 1:
		return DistanceClass{Suitable: false, Label: "Too quick for prep", ETA: eta}
	case distance <= 3:
		return DistanceClass{Suitable: true, Label: "Ideal for quick meals", ETA: eta}
	case distance <= 5:
		return DistanceClass{Suitable: true, Label: "Good for moderate prep", ETA: eta}
	case distance <= 7:
		return DistanceClass{Suitable: true, Label: "Good for large orders", ETA: eta}
	default:
		return DistanceClass{Suitable: false, Label: "Risk of delay, consider carefully", ETA: eta}
	}
}
