// internal/domain/sales.go
package domain

import "time"

// OrderFact is a single shipped/delivered order as returned by the read store:
// when it was placed, its total in the store's base currency unit, and how
// many line items it carried.
type OrderFact struct {
	OrderedAt time.Time `json:"ordered_at" db:"ordered_at"`
	Total     float64   `json:"total" db:"total"`
	Items     int       `json:"items" db:"items"`
}

// DailyRecord is one calendar day (UTC) of aggregated sales. Days with no
// orders are present with all-zero values so a series never has gaps.
type DailyRecord struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Orders  int       `json:"orders"`
	Items   int       `json:"items"`
}

// CategorySale is per-category revenue split into the first and second half
// of the requested historical window.
type CategorySale struct {
	Category          string  `json:"category" db:"category"`
	FirstHalfRevenue  float64 `json:"first_half_revenue" db:"first_half_revenue"`
	SecondHalfRevenue float64 `json:"second_half_revenue" db:"second_half_revenue"`
}

// ProductSale is per-product unit sales split into the first and second half
// of the requested historical window.
type ProductSale struct {
	ProductID       int64  `json:"product_id" db:"product_id"`
	SKU             string `json:"sku" db:"sku"`
	Name            string `json:"name" db:"name"`
	FirstHalfUnits  int    `json:"first_half_units" db:"first_half_units"`
	SecondHalfUnits int    `json:"second_half_units" db:"second_half_units"`
}

// ProductStock is a product's current stock level together with its unit
// sales over the trailing 30 days.
type ProductStock struct {
	ProductID    int64  `json:"product_id" db:"product_id"`
	SKU          string `json:"sku" db:"sku"`
	Name         string `json:"name" db:"name"`
	CurrentStock int    `json:"current_stock" db:"current_stock"`
	UnitsSold30d int    `json:"units_sold_30d" db:"units_sold_30d"`
}
