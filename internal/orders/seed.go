package orders

import "time"

// SeedProducts is the built-in catalog used by the mock access layer and by
// the product store when the API cannot be reached.
func SeedProducts() []Product {
	return []Product{
		{ID: "1", Name: "Hamburger Classic", UnitPrice: 10},
		{ID: "2", Name: "French Fries", UnitPrice: 5},
		{ID: "3", Name: "Cheeseburger", UnitPrice: 12},
		{ID: "4", Name: "Chicken Burger", UnitPrice: 11},
		{ID: "5", Name: "Soda", UnitPrice: 3},
	}
}

// SeedOrders returns the mock order dataset dated relative to now.
func SeedOrders(now time.Time) []Order {
	today := now.UTC().Format(time.RFC3339Nano)
	yesterday := now.Add(-24 * time.Hour).UTC().Format(time.RFC3339Nano)
	return []Order{
		{
			ID:          "1",
			OrderNumber: "ORD-001",
			Date:        today,
			Status:      StatusCompleted,
			Products: []LineItem{
				{ID: "1", Name: "Hamburger Classic", UnitPrice: 10, Quantity: 2},
				{ID: "2", Name: "French Fries", UnitPrice: 5, Quantity: 1},
			},
			ProductCount: 2,
			FinalPrice:   25,
		},
		{
			ID:           "2",
			OrderNumber:  "ORD-002",
			Date:         yesterday,
			Status:       StatusInProgress,
			Products:     []LineItem{{ID: "3", Name: "Cheeseburger", UnitPrice: 12, Quantity: 1}},
			ProductCount: 1,
			FinalPrice:   12,
		},
		{
			ID:          "3",
			OrderNumber: "ORD-003",
			Date:        today,
			Status:      StatusPending,
			Products: []LineItem{
				{ID: "4", Name: "Chicken Burger", UnitPrice: 11, Quantity: 2},
				{ID: "5", Name: "Soda", UnitPrice: 3, Quantity: 2},
			},
			ProductCount: 2,
			FinalPrice:   28,
		},
	}
}
