package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/resale-ops/backend-go/internal/domain"
)

// TxRunner executes a function inside a database transaction. The pooled
// postgres wrapper satisfies it; NewSQLTxRunner adapts a bare *sql.DB for
// callers outside that pool.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// IngestRepository is the write side used by report ingestion and seeding.
// It is deliberately separate from SalesRepository: the forecasting engine
// only ever reads. Each write runs inside one transaction, so a mid-row
// failure never strands an order header with a stale total.
type IngestRepository struct {
	runner TxRunner
}

func NewIngestRepository(runner TxRunner) *IngestRepository {
	return &IngestRepository{runner: runner}
}

type sqlTxRunner struct {
	db *sql.DB
}

// NewSQLTxRunner wraps a plain database handle, like the seed CLI's pgx
// connection, in the TxRunner contract.
func NewSQLTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// IngestOrderRow resolves the category and product for a parsed report line,
// then writes the order header and line item, all in one transaction.
func (r *IngestRepository) IngestOrderRow(ctx context.Context, row *domain.OrderRow) error {
	return r.runner.WithTx(ctx, func(tx *sql.Tx) error {
		categoryID, err := upsertCategory(ctx, tx, &domain.Category{Name: row.Category})
		if err != nil {
			return err
		}

		productID, err := upsertProduct(ctx, tx, &domain.Product{
			SKU:        row.SKU,
			Name:       row.Product,
			CategoryID: categoryID,
		})
		if err != nil {
			return err
		}

		orderID, err := upsertOrder(ctx, tx, row)
		if err != nil {
			return err
		}

		if err := upsertOrderItem(ctx, tx, orderID, productID, row.Quantity, row.UnitPrice); err != nil {
			return err
		}

		return refreshOrderTotal(ctx, tx, orderID)
	})
}

func (r *IngestRepository) SetProductStock(ctx context.Context, sku string, stock int) error {
	return r.runner.WithTx(ctx, func(tx *sql.Tx) error {
		query := `UPDATE products SET stock = $2, updated_at = NOW() WHERE sku = $1`
		if _, err := tx.ExecContext(ctx, query, sku, stock); err != nil {
			return fmt.Errorf("failed to set product stock: %w", err)
		}
		return nil
	})
}

func upsertCategory(ctx context.Context, tx *sql.Tx, category *domain.Category) (int64, error) {
	query := `
		INSERT INTO categories (name, updated_at)
		VALUES ($1, NOW())
		ON CONFLICT (name)
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`
	var id int64
	if err := tx.QueryRowContext(ctx, query, category.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert category: %w", err)
	}
	return id, nil
}

func upsertProduct(ctx context.Context, tx *sql.Tx, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (sku, name, category_id, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (sku)
		DO UPDATE SET
			name = EXCLUDED.name,
			category_id = EXCLUDED.category_id,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	if err := tx.QueryRowContext(ctx, query, product.SKU, product.Name, product.CategoryID).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert product: %w", err)
	}
	return id, nil
}

// upsertOrder writes the order header keyed by the marketplace order number
// and returns the internal order id. The total starts at zero and is
// recomputed from line items by refreshOrderTotal.
func upsertOrder(ctx context.Context, tx *sql.Tx, row *domain.OrderRow) (int64, error) {
	query := `
		INSERT INTO orders (external_id, ordered_at, status, total, updated_at)
		VALUES ($1, $2, $3, 0, NOW())
		ON CONFLICT (external_id)
		DO UPDATE SET
			ordered_at = EXCLUDED.ordered_at,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id
	`
	var id int64
	if err := tx.QueryRowContext(ctx, query, row.ExternalID, row.OrderedAt, row.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert order: %w", err)
	}
	return id, nil
}

func upsertOrderItem(ctx context.Context, tx *sql.Tx, orderID, productID int64, quantity int, unitPrice float64) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			updated_at = NOW()
	`
	if _, err := tx.ExecContext(ctx, query, orderID, productID, quantity, unitPrice); err != nil {
		return fmt.Errorf("failed to upsert order item: %w", err)
	}
	return nil
}

// refreshOrderTotal recomputes the order total from its line items, so
// re-ingesting the same report never double counts.
func refreshOrderTotal(ctx context.Context, tx *sql.Tx, orderID int64) error {
	query := `
		UPDATE orders SET total = (
			SELECT COALESCE(SUM(quantity * unit_price), 0)
			FROM order_items WHERE order_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("failed to refresh order total: %w", err)
	}
	return nil
}
