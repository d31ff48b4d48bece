package domain

import "time"

// Product represents a stocked item with quantity and cost basis.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CostPrice float64   `json:"costPrice"`
	Image     string    `json:"image,omitempty"` // base64 data URI, optional
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LowStockThreshold marks the upper bound (exclusive) for the low stock
// classification. A product is low on stock when 0 < quantity < 5.
const LowStockThreshold = 5
