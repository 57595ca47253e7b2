// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/resale-ops/backend-go/internal/repository"
)

// defaultCategory is attached at this boundary to sales whose product has no
// category, so the numeric core never sees missing names.
const defaultCategory = "uncategorized"

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) OrderFacts(ctx context.Context, from, to time.Time) ([]domain.OrderFact, error) {
	query := `
        SELECT
            o.ordered_at,
            o.total,
            COALESCE(SUM(oi.quantity), 0) AS items
        FROM orders o
        LEFT JOIN order_items oi ON oi.order_id = o.id
        WHERE o.status IN ('shipped', 'delivered')
          AND o.ordered_at >= $1
          AND o.ordered_at < $2
        GROUP BY o.id, o.ordered_at, o.total
        ORDER BY o.ordered_at
    `

	var facts []domain.OrderFact
	if err := r.db.SelectContext(ctx, &facts, query, from, to); err != nil {
		return nil, fmt.Errorf("error getting order facts: %w", err)
	}

	return facts, nil
}

func (r *salesRepository) CategorySales(ctx context.Context, from, mid, to time.Time) ([]domain.CategorySale, error) {
	query := `
        SELECT
            COALESCE(NULLIF(c.name, ''), '` + defaultCategory + `') AS category,
            COALESCE(SUM(oi.quantity * oi.unit_price) FILTER (WHERE o.ordered_at < $2), 0) AS first_half_revenue,
            COALESCE(SUM(oi.quantity * oi.unit_price) FILTER (WHERE o.ordered_at >= $2), 0) AS second_half_revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN products p ON p.id = oi.product_id
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE o.status IN ('shipped', 'delivered')
          AND o.ordered_at >= $1
          AND o.ordered_at < $3
        GROUP BY 1
    `

	var sales []domain.CategorySale
	if err := r.db.SelectContext(ctx, &sales, query, from, mid, to); err != nil {
		return nil, fmt.Errorf("error getting category sales: %w", err)
	}

	return sales, nil
}

func (r *salesRepository) ProductSales(ctx context.Context, from, mid, to time.Time) ([]domain.ProductSale, error) {
	query := `
        SELECT
            p.id AS product_id,
            p.sku,
            COALESCE(NULLIF(p.name, ''), 'Product ' || p.sku) AS name,
            COALESCE(SUM(oi.quantity) FILTER (WHERE o.ordered_at < $2), 0) AS first_half_units,
            COALESCE(SUM(oi.quantity) FILTER (WHERE o.ordered_at >= $2), 0) AS second_half_units
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        JOIN products p ON p.id = oi.product_id
        WHERE o.status IN ('shipped', 'delivered')
          AND o.ordered_at >= $1
          AND o.ordered_at < $3
        GROUP BY p.id, p.sku, p.name
    `

	var sales []domain.ProductSale
	if err := r.db.SelectContext(ctx, &sales, query, from, mid, to); err != nil {
		return nil, fmt.Errorf("error getting product sales: %w", err)
	}

	return sales, nil
}

func (r *salesRepository) ProductStocks(ctx context.Context, trailingDays int) ([]domain.ProductStock, error) {
	if trailingDays <= 0 {
		trailingDays = 30
	}

	query := `
        SELECT
            p.id AS product_id,
            p.sku,
            COALESCE(NULLIF(p.name, ''), 'Product ' || p.sku) AS name,
            p.stock AS current_stock,
            COALESCE(SUM(oi.quantity) FILTER (WHERE o.id IS NOT NULL), 0) AS units_sold_30d
        FROM products p
        LEFT JOIN order_items oi ON oi.product_id = p.id
        LEFT JOIN orders o ON o.id = oi.order_id
            AND o.status IN ('shipped', 'delivered')
            AND o.ordered_at >= NOW() - ($1 || ' days')::interval
        GROUP BY p.id, p.sku, p.name, p.stock
    `

	var stocks []domain.ProductStock
	if err := r.db.SelectContext(ctx, &stocks, query, trailingDays); err != nil {
		return nil, fmt.Errorf("error getting product stocks: %w", err)
	}

	return stocks, nil
}
