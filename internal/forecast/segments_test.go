package forecast

import (
	"testing"

	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthRate(t *testing.T) {
	assert.InDelta(t, 50.0, GrowthRate(100, 150), 1e-9)
	assert.InDelta(t, -25.0, GrowthRate(200, 150), 1e-9)
	// a segment with no first-half activity reads as newly active
	assert.Equal(t, 100.0, GrowthRate(0, 20))
	assert.Equal(t, 0.0, GrowthRate(0, 0))
}

func TestForecastCategoriesOrderingAndTrend(t *testing.T) {
	sales := []domain.CategorySale{
		{Category: "toys", FirstHalfRevenue: 1000, SecondHalfRevenue: 1000},
		{Category: "figures", FirstHalfRevenue: 2000, SecondHalfRevenue: 3000},
		{Category: "cards", FirstHalfRevenue: 5000, SecondHalfRevenue: 4000},
	}

	out := ForecastCategories(sales, 60, 30)
	require.Len(t, out, 3)

	// ordered by current-period revenue descending
	assert.Equal(t, "cards", out[0].Category)
	assert.Equal(t, "figures", out[1].Category)
	assert.Equal(t, "toys", out[2].Category)

	assert.Equal(t, domain.TrendDown, out[0].Trend)
	assert.Equal(t, domain.TrendUp, out[1].Trend)
	assert.Equal(t, domain.TrendStable, out[2].Trend)
}

func TestForecastCategoriesProjection(t *testing.T) {
	sales := []domain.CategorySale{
		{Category: "cards", FirstHalfRevenue: 3000, SecondHalfRevenue: 3000},
	}

	out := ForecastCategories(sales, 60, 30)
	require.Len(t, out, 1)
	// daily average 100 over a 30-day horizon with zero growth
	assert.Equal(t, 3000.0, out[0].PredictedRevenue)
	assert.Equal(t, 0.0, out[0].GrowthRate)
}

func TestForecastProductsNewSegment(t *testing.T) {
	sales := []domain.ProductSale{
		{ProductID: 1, SKU: "FIG-001", Name: "Figure", FirstHalfUnits: 0, SecondHalfUnits: 20},
	}

	out := ForecastProducts(sales, 60, 30, 0)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].GrowthRate)
	assert.Equal(t, domain.TrendUp, out[0].Trend)
	assert.True(t, out[0].NeedsRestock)
	assert.Equal(t, int(out[0].PredictedUnits), out[0].RecommendedQuantity)
}

func TestForecastProductsRestockFlag(t *testing.T) {
	sales := []domain.ProductSale{
		// declining: never restock regardless of volume
		{ProductID: 1, SKU: "A", FirstHalfUnits: 100, SecondHalfUnits: 50},
		// stable but too little predicted demand
		{ProductID: 2, SKU: "B", FirstHalfUnits: 2, SecondHalfUnits: 2},
		// healthy volume, stable trend
		{ProductID: 3, SKU: "C", FirstHalfUnits: 40, SecondHalfUnits: 40},
	}

	out := ForecastProducts(sales, 60, 30, 0)
	require.Len(t, out, 3)

	bySKU := make(map[string]domain.ProductForecast, len(out))
	for _, p := range out {
		bySKU[p.SKU] = p
	}

	assert.False(t, bySKU["A"].NeedsRestock)
	assert.Equal(t, 0, bySKU["A"].RecommendedQuantity)
	assert.False(t, bySKU["B"].NeedsRestock)
	assert.True(t, bySKU["C"].NeedsRestock)
	assert.Equal(t, 40, bySKU["C"].RecommendedQuantity)
}

func TestForecastProductsLimit(t *testing.T) {
	sales := []domain.ProductSale{
		{ProductID: 1, SKU: "A", SecondHalfUnits: 10},
		{ProductID: 2, SKU: "B", SecondHalfUnits: 30},
		{ProductID: 3, SKU: "C", SecondHalfUnits: 20},
	}

	out := ForecastProducts(sales, 60, 30, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].SKU)
	assert.Equal(t, "C", out[1].SKU)
}
