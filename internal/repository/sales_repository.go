// internal/repository/sales_repository.go
package repository

import (
	"context"
	"time"

	"github.com/resale-ops/backend-go/internal/domain"
)

// SalesRepository is the read-only aggregate source the forecasting engine
// consumes. Implementations never expose order rows beyond what the engine
// needs: per-order facts for the daily series, half-window segment splits,
// and stock positions with trailing sales.
type SalesRepository interface {
	// OrderFacts returns shipped/delivered orders placed in [from, to).
	OrderFacts(ctx context.Context, from, to time.Time) ([]domain.OrderFact, error)

	// CategorySales returns per-category revenue split at mid into the first
	// [from, mid) and second [mid, to) half of the window.
	CategorySales(ctx context.Context, from, mid, to time.Time) ([]domain.CategorySale, error)

	// ProductSales returns per-product unit sales split the same way.
	ProductSales(ctx context.Context, from, mid, to time.Time) ([]domain.ProductSale, error)

	// ProductStocks returns current stock levels with unit sales over the
	// trailing trailingDays.
	ProductStocks(ctx context.Context, trailingDays int) ([]domain.ProductStock, error)
}
