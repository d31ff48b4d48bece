package domain

// Event bus topics published by the store after a successful commit. The
// payload is the created record.
const (
	EventProductAdded   = "product.added"
	EventSaleRegistered = "sale.registered"
)
