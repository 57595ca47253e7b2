package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/resale-ops/backend-go/internal/reports"
	"github.com/resale-ops/backend-go/internal/repository"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with catalog and historical order data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:  "catalog",
				Usage: "Seed catalog data (categories and products)",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing catalog seed data",
						Value:   "./data/seeds/catalog",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
				},
				Action: seedCatalog,
			},
			{
				Name:  "orders",
				Usage: "Seed historical orders from report CSV files",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "reports-dir",
						Usage:   "Directory containing order report CSV files",
						Value:   "./data/seeds/reports",
						EnvVars: []string{"SEED_REPORTS_DIR"},
					},
				},
				Action: seedOrders,
			},
			{
				Name:  "all",
				Usage: "Seed catalog and historical orders",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "Directory containing catalog seed data",
						Value:   "./data/seeds/catalog",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.StringFlag{
						Name:    "reports-dir",
						Usage:   "Directory containing order report CSV files",
						Value:   "./data/seeds/reports",
						EnvVars: []string{"SEED_REPORTS_DIR"},
					},
				},
				Action: func(c *cli.Context) error {
					if err := seedCatalog(c); err != nil {
						return fmt.Errorf("error seeding catalog: %w", err)
					}
					if err := seedOrders(c); err != nil {
						return fmt.Errorf("error seeding orders: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seedCatalog loads categories.csv (name) and products.csv
// (sku,name,category,stock) inside one transaction.
func seedCatalog(c *cli.Context) error {
	db, err := openDB(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	dataDir := c.String("data-dir")
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Seeding catalog...")

	if err := seedCategories(ctx, tx, filepath.Join(dataDir, "categories.csv")); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := seedProducts(ctx, tx, filepath.Join(dataDir, "products.csv")); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Catalog seeding completed successfully!")
	return nil
}

func seedCategories(ctx context.Context, tx *sql.Tx, path string) error {
	return forEachCSVRow(path, []string{"name"}, func(get func(string) string) error {
		name := get("name")
		if name == "" {
			return nil
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (name, updated_at)
			VALUES ($1, NOW())
			ON CONFLICT (name) DO NOTHING
		`, name)
		return err
	})
}

func seedProducts(ctx context.Context, tx *sql.Tx, path string) error {
	return forEachCSVRow(path, []string{"sku", "name", "category", "stock"}, func(get func(string) string) error {
		if get("sku") == "" {
			return nil
		}

		stock, _ := strconv.Atoi(get("stock"))
		product := domain.Product{
			SKU:          get("sku"),
			Name:         get("name"),
			CurrentStock: stock,
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (sku, name, category_id, stock, updated_at)
			VALUES ($1, $2, (SELECT id FROM categories WHERE name = $3), $4, NOW())
			ON CONFLICT (sku)
			DO UPDATE SET
				name = EXCLUDED.name,
				category_id = EXCLUDED.category_id,
				stock = EXCLUDED.stock,
				updated_at = NOW()
		`, product.SKU, product.Name, get("category"), product.CurrentStock)
		return err
	})
}

// seedOrders replays every order report CSV in reports-dir through the same
// parser the ingest server uses.
func seedOrders(c *cli.Context) error {
	db, err := openDB(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	reportsDir := c.String("reports-dir")
	ctx := context.Background()

	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		return fmt.Errorf("failed to read reports dir %s: %w", reportsDir, err)
	}

	ingestService := reports.NewIngestService(nil, repository.NewIngestRepository(repository.NewSQLTxRunner(db)), nil, nil)

	seeded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(reportsDir, entry.Name())
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		stats, err := ingestService.IngestReader(ctx, file)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to seed from %s: %w", entry.Name(), err)
		}

		log.Printf("Seeded %s: %d %s rows (%d skipped)\n", entry.Name(), stats.Rows, stats.Kind, stats.Skipped)
		seeded++
	}

	log.Printf("Order seeding completed, %d files processed\n", seeded)
	return nil
}

// forEachCSVRow streams a CSV with a header row, invoking fn with a
// column-name getter per row.
func forEachCSVRow(path string, requiredCols []string, fn func(get func(string) string) error) error {
	log.Printf("Seeding from %s\n", path)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredCols {
		if _, ok := colMap[col]; !ok {
			return fmt.Errorf("missing required column %q in %s", col, path)
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		get := func(col string) string {
			if idx, ok := colMap[col]; ok && idx < len(record) {
				return strings.TrimSpace(record[idx])
			}
			return ""
		}
		if err := fn(get); err != nil {
			return err
		}
	}
}
