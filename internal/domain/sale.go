package domain

import "time"

// Sale is an immutable record of units sold at a price. ProductName and
// CostPrice are denormalized snapshots taken at registration time so the
// record survives later edits or deletion of the product. There is no
// foreign-key enforcement on ProductID.
type Sale struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	CostPrice   float64   `json:"costPrice"`
	SalePrice   float64   `json:"salePrice"`
	Profit      float64   `json:"profit"`
	Date        time.Time `json:"date"`
}

// SaleInput carries the caller-supplied fields for sale registration.
type SaleInput struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	CostPrice   float64 `json:"costPrice"`
	SalePrice   float64 `json:"salePrice"`
}

// Totals aggregates a list of sales.
type Totals struct {
	TotalSold    int     `json:"totalSold"`
	TotalProfit  float64 `json:"totalProfit"`
	TotalRevenue float64 `json:"totalRevenue"`
}
