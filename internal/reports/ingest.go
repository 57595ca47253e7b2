package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/resale-ops/backend-go/internal/cache"
	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/resale-ops/backend-go/internal/repository"
	"github.com/resale-ops/backend-go/internal/storage"
)

// defaultCategory is assigned to report lines with a blank category so the
// read side never has to guard against missing values.
const defaultCategory = "uncategorized"

// Report kinds, detected from the header row.
const (
	reportKindOrders = "orders"
	reportKindStock  = "stock"
)

var orderColumns = []string{"order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price"}
var stockColumns = []string{"sku", "stock"}

var orderedAtLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00", "2006-01-02"}

// IngestStats summarizes one ingested report file.
type IngestStats struct {
	Kind    string `json:"kind"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
}

type IngestService struct {
	driveService *Service
	repo         *repository.IngestRepository
	cache        cache.ForecastSummaryCache
	archive      storage.ObjectStorage
}

// NewIngestService builds the ingest pipeline. archive may be nil, in which
// case ingested reports are not kept for replay.
func NewIngestService(driveService *Service, repo *repository.IngestRepository, cacheImpl cache.ForecastSummaryCache, archive storage.ObjectStorage) *IngestService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &IngestService{
		driveService: driveService,
		repo:         repo,
		cache:        cacheImpl,
		archive:      archive,
	}
}

// IngestFile streams a report from Drive straight into the database, then
// drops every cached forecast summary.
func (s *IngestService) IngestFile(ctx context.Context, fileID string) (*IngestStats, error) {
	pr, pw := io.Pipe()
	go func() {
		err := s.driveService.DownloadFile(fileID, pw)
		pw.CloseWithError(err)
	}()

	stats, err := s.IngestReader(ctx, pr)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("reports: cache invalidation after ingest failed")
	}

	return stats, nil
}

// FileResult pairs a synced file name with its ingest stats.
type FileResult struct {
	File  string      `json:"file"`
	Stats IngestStats `json:"stats"`
}

// SyncFolder pulls every CSV/XLSX report from the configured Drive folder,
// ingests each, and archives the processed CSVs. Cached summaries are dropped
// once at the end.
func (s *IngestService) SyncFolder(ctx context.Context, opts DownloadOptions) ([]FileResult, error) {
	downloader := NewDownloader(s.driveService)
	paths, err := downloader.DownloadFolderCSV(ctx, opts)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		stats, err := s.ingestLocalFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest %s: %w", filepath.Base(path), err)
		}
		results = append(results, FileResult{File: filepath.Base(path), Stats: *stats})
	}

	if len(results) > 0 {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Msg("reports: cache invalidation after sync failed")
		}
	}

	return results, nil
}

func (s *IngestService) ingestLocalFile(ctx context.Context, path string) (*IngestStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stats, err := s.IngestReader(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		key := fmt.Sprintf("reports/%s/%s", time.Now().UTC().Format("2006-01-02"), filepath.Base(path))
		if err := s.archive.UploadObject(ctx, key, data); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("reports: archive upload failed")
		}
	}

	return stats, nil
}

// IngestReader parses a CSV report. The header row decides whether it is an
// order report or a stock snapshot. Rows missing their upsert key are skipped
// and counted; anything else malformed fails the whole file.
func (s *IngestService) IngestReader(ctx context.Context, r io.Reader) (*IngestStats, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	kind, err := detectReportKind(colMap)
	if err != nil {
		return nil, err
	}

	stats := &IngestStats{Kind: kind}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		switch kind {
		case reportKindOrders:
			row, err := parseOrderRow(record, colMap)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", stats.Rows+stats.Skipped+2, err)
			}
			if row == nil {
				stats.Skipped++
				continue
			}
			if err := s.repo.IngestOrderRow(ctx, row); err != nil {
				return nil, fmt.Errorf("failed to ingest order row: %w", err)
			}
		case reportKindStock:
			sku, stock, ok := parseStockRow(record, colMap)
			if !ok {
				stats.Skipped++
				continue
			}
			if err := s.repo.SetProductStock(ctx, sku, stock); err != nil {
				return nil, fmt.Errorf("failed to set stock: %w", err)
			}
		}
		stats.Rows++
	}

	return stats, nil
}

// detectReportKind matches the header against the two known report shapes.
// Order columns win when both match, since order reports also carry a sku.
func detectReportKind(colMap map[string]int) (string, error) {
	hasAll := func(cols []string) bool {
		for _, c := range cols {
			if _, ok := colMap[c]; !ok {
				return false
			}
		}
		return true
	}

	if hasAll(orderColumns) {
		return reportKindOrders, nil
	}
	if hasAll(stockColumns) {
		return reportKindStock, nil
	}
	return "", fmt.Errorf("unrecognized report header: need %v or %v", orderColumns, stockColumns)
}

// parseOrderRow returns (nil, nil) for rows without an order id or sku; those
// are footer/summary lines in real exports.
func parseOrderRow(record []string, colMap map[string]int) (*domain.OrderRow, error) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	externalID := getValue("order_id")
	sku := getValue("sku")
	if externalID == "" || sku == "" {
		return nil, nil
	}

	orderedAt, err := parseOrderedAt(getValue("ordered_at"))
	if err != nil {
		return nil, err
	}

	quantity, err := strconv.Atoi(getValue("quantity"))
	if err != nil {
		return nil, fmt.Errorf("bad quantity %q: %w", getValue("quantity"), err)
	}

	unitPrice, err := strconv.ParseFloat(getValue("unit_price"), 64)
	if err != nil {
		return nil, fmt.Errorf("bad unit_price %q: %w", getValue("unit_price"), err)
	}

	category := getValue("category")
	if category == "" {
		category = defaultCategory
	}

	row := &domain.OrderRow{
		ExternalID: externalID,
		OrderedAt:  orderedAt,
		Status:     strings.ToLower(getValue("status")),
		SKU:        sku,
		Product:    getValue("product_name"),
		Category:   category,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Total:      float64(quantity) * unitPrice,
	}
	return row, nil
}

func parseStockRow(record []string, colMap map[string]int) (sku string, stock int, ok bool) {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	sku = getValue("sku")
	if sku == "" {
		return "", 0, false
	}

	stock, err := strconv.Atoi(getValue("stock"))
	if err != nil || stock < 0 {
		return "", 0, false
	}
	return sku, stock, true
}

func parseOrderedAt(value string) (time.Time, error) {
	for _, layout := range orderedAtLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad ordered_at %q", value)
}
