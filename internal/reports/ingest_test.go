package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerMap(cols ...string) map[string]int {
	m := make(map[string]int, len(cols))
	for i, c := range cols {
		m[c] = i
	}
	return m
}

func TestDetectReportKind(t *testing.T) {
	orders := headerMap("order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price")
	kind, err := detectReportKind(orders)
	require.NoError(t, err)
	assert.Equal(t, reportKindOrders, kind)

	stock := headerMap("sku", "stock")
	kind, err = detectReportKind(stock)
	require.NoError(t, err)
	assert.Equal(t, reportKindStock, kind)

	_, err = detectReportKind(headerMap("foo", "bar"))
	assert.Error(t, err)
}

func TestParseOrderRow(t *testing.T) {
	colMap := headerMap("order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price")

	row, err := parseOrderRow([]string{"ORD-1", "2026-08-01 14:30:00", "Shipped", "SNK-001", "Runner", "sneakers", "2", "150.5"}, colMap)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, "ORD-1", row.ExternalID)
	assert.Equal(t, time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC), row.OrderedAt)
	assert.Equal(t, "shipped", row.Status)
	assert.Equal(t, "SNK-001", row.SKU)
	assert.Equal(t, 2, row.Quantity)
	assert.InDelta(t, 150.5, row.UnitPrice, 1e-9)
	assert.InDelta(t, 301.0, row.Total, 1e-9)
}

func TestParseOrderRowDefaultsBlankCategory(t *testing.T) {
	colMap := headerMap("order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price")

	row, err := parseOrderRow([]string{"ORD-2", "2026-08-01", "delivered", "SNK-002", "Court", "", "1", "99"}, colMap)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, defaultCategory, row.Category)
}

func TestParseOrderRowSkipsFooterLines(t *testing.T) {
	colMap := headerMap("order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price")

	row, err := parseOrderRow([]string{"", "", "Total", "", "", "", "", "4520"}, colMap)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestParseOrderRowRejectsBadNumbers(t *testing.T) {
	colMap := headerMap("order_id", "ordered_at", "status", "sku", "product_name", "category", "quantity", "unit_price")

	_, err := parseOrderRow([]string{"ORD-3", "2026-08-01", "shipped", "SNK-003", "Slide", "sandals", "two", "10"}, colMap)
	assert.Error(t, err)

	_, err = parseOrderRow([]string{"ORD-3", "not-a-date", "shipped", "SNK-003", "Slide", "sandals", "1", "10"}, colMap)
	assert.Error(t, err)
}

func TestParseStockRow(t *testing.T) {
	colMap := headerMap("sku", "stock")

	sku, stock, ok := parseStockRow([]string{"SNK-001", "42"}, colMap)
	require.True(t, ok)
	assert.Equal(t, "SNK-001", sku)
	assert.Equal(t, 42, stock)

	_, _, ok = parseStockRow([]string{"", "42"}, colMap)
	assert.False(t, ok)

	_, _, ok = parseStockRow([]string{"SNK-001", "-3"}, colMap)
	assert.False(t, ok)
}
