package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/resale-ops/backend-go/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// positiveQueryInt reads an integer query parameter, returning 0 for absent,
// malformed, or non-positive values so the service applies its defaults.
func positiveQueryInt(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value <= 0 {
		return 0
	}
	return value
}

func (h *ForecastHandler) GetSummary(c *gin.Context) {
	historicalDays := positiveQueryInt(c, "days")
	forecastDays := positiveQueryInt(c, "forecast_days")

	summary, err := h.service.GenerateSummary(c.Request.Context(), historicalDays, forecastDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *ForecastHandler) GetAccuracy(c *gin.Context) {
	testDays := positiveQueryInt(c, "test_days")

	report, err := h.service.EvaluateAccuracy(c.Request.Context(), testDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate forecast accuracy", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ForecastHandler) GetHistory(c *gin.Context) {
	daysBack := positiveQueryInt(c, "days")

	series, err := h.service.HistoricalSeries(c.Request.Context(), daysBack)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sales history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": series,
		"days":    len(series),
	})
}
