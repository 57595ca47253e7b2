// internal/domain/ingest.go
package domain

import "time"

// Category is a product category row as stored in the catalog.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Product is a catalog product row.
type Product struct {
	ID           int64  `json:"id" db:"id"`
	SKU          string `json:"sku" db:"sku"`
	Name         string `json:"name" db:"name"`
	CategoryID   int64  `json:"category_id" db:"category_id"`
	CurrentStock int    `json:"current_stock" db:"stock"`
}

// OrderRow is one parsed line of a marketplace sales report: a single order
// line item together with its order header fields.
type OrderRow struct {
	ExternalID string    // marketplace order number, upsert key
	OrderedAt  time.Time
	Status     string
	SKU        string
	Product    string
	Category   string
	Quantity   int
	UnitPrice  float64
	Total      float64
}
