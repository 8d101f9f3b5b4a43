package restaurant

// MenuItem represents a dish offered by a restaurant.
type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Restaurant is read-only reference data used at booking time.
type Restaurant struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Cuisine  string     `json:"cuisine"`
	Rating   float64    `json:"rating"`
	Distance float64    `json:"distance"`
	PrepTime int        `json:"prepTime"`
	Menu     []MenuItem `json:"menu"`
}

// Seed returns the default restaurant catalog.
func Seed() []Restaurant {
	return []Restaurant{
		{
			ID: "1", Name: "The Green Leaf Eatery", Cuisine: "Vegetarian", Rating: 4.5, Distance: 2.5, PrepTime: 15,
			Menu: []MenuItem{{ID: "m1", Name: "Veggie Burger", Price: 8}, {ID: "m2", Name: "Salad Bowl", Price: 10}},
		},
		{
			ID: "2", Name: "Spicy Route Grill", Cuisine: "Indian", Rating: 4.2, Distance: 5.1, PrepTime: 20,
			Menu: []MenuItem{{ID: "m3", Name: "Chicken Tikka", Price: 12}, {ID: "m4", Name: "Naan Bread", Price: 3}},
		},
		{
			ID: "3", Name: "Pasta Paradise", Cuisine: "Italian", Rating: 4.8, Distance: 0.8, PrepTime: 12,
			Menu: []MenuItem{{ID: "m5", Name: "Spaghetti Carbonara", Price: 14}, {ID: "m6", Name: "Garlic Bread", Price: 5}},
		},
		{
			ID: "4", Name: "Sushi Central", Cuisine: "Japanese", Rating: 4.6, Distance: 8.3, PrepTime: 18,
			Menu: []MenuItem{{ID: "m7", Name: "Salmon Nigiri Set", Price: 16}, {ID: "m8", Name: "Miso Soup", Price: 4}},
		},
		{
			ID: "5", Name: "Burger Barn", Cuisine: "American", Rating: 4.0, Distance: 3.7, PrepTime: 10,
			Menu: []MenuItem{{ID: "m9", Name: "Classic Cheeseburger", Price: 9}, {ID: "m10", Name: "Fries", Price: 3}},
		},
		{
			ID: "6", Name: "Taco Town", Cuisine: "Mexican", Rating: 4.3, Distance: 6.0, PrepTime: 15,
			Menu: []MenuItem{{ID: "m11", Name: "Beef Tacos (3)", Price: 10}, {ID: "m12", Name: "Guacamole & Chips", Price: 6}},
		},
	}
}
