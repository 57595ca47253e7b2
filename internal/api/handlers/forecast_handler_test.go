package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale-ops/backend-go/internal/config"
	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/resale-ops/backend-go/internal/service"
)

type fixedSalesRepo struct {
	facts []domain.OrderFact
}

func (r *fixedSalesRepo) OrderFacts(ctx context.Context, from, to time.Time) ([]domain.OrderFact, error) {
	return r.facts, nil
}

func (r *fixedSalesRepo) CategorySales(ctx context.Context, from, mid, to time.Time) ([]domain.CategorySale, error) {
	return nil, nil
}

func (r *fixedSalesRepo) ProductSales(ctx context.Context, from, mid, to time.Time) ([]domain.ProductSale, error) {
	return nil, nil
}

func (r *fixedSalesRepo) ProductStocks(ctx context.Context, trailingDays int) ([]domain.ProductStock, error) {
	return nil, nil
}

func newTestRouter(repo *fixedSalesRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewForecastService(repo, nil, config.ForecastConfig{})
	handler := NewForecastHandler(svc)

	router := gin.New()
	router.GET("/summary", handler.GetSummary)
	router.GET("/accuracy", handler.GetAccuracy)
	router.GET("/history", handler.GetHistory)
	return router
}

func dailyOrders(days int, total float64) []domain.OrderFact {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	facts := make([]domain.OrderFact, 0, days)
	for i := 1; i <= days; i++ {
		facts = append(facts, domain.OrderFact{
			OrderedAt: today.AddDate(0, 0, -i).Add(10 * time.Hour),
			Total:     total,
			Items:     1,
		})
	}
	return facts
}

func TestGetSummaryReturnsWellFormedJSON(t *testing.T) {
	router := newTestRouter(&fixedSalesRepo{facts: dailyOrders(90, 100)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?days=90&forecast_days=14", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.ForecastSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Len(t, summary.DailyForecasts, 14)
	assert.NotNil(t, summary.CategoryForecasts)
	assert.NotNil(t, summary.InventoryRecommendations)
}

func TestGetSummaryIgnoresMalformedWindows(t *testing.T) {
	router := newTestRouter(&fixedSalesRepo{facts: dailyOrders(90, 100)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summary?days=abc&forecast_days=-5", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.ForecastSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Len(t, summary.DailyForecasts, 30)
}

func TestGetAccuracy(t *testing.T) {
	router := newTestRouter(&fixedSalesRepo{facts: dailyOrders(120, 100)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/accuracy?test_days=30", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.AccuracyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 30, report.TestDays)
	assert.InDelta(t, 100.0, report.Accuracy, 1e-6)
}

func TestGetHistory(t *testing.T) {
	router := newTestRouter(&fixedSalesRepo{facts: dailyOrders(10, 50)})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/history?days=10", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Records []domain.DailyRecord `json:"records"`
		Days    int                  `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Days)
	require.Len(t, body.Records, 10)
	assert.InDelta(t, 50.0, body.Records[0].Revenue, 1e-9)
}
