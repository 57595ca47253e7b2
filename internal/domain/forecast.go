// internal/domain/forecast.go
package domain

import "time"

// Trend direction labels shared by the trend estimator and the segment
// forecasters.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Inventory actions, ordered by urgency.
const (
	ActionRestockUrgent = "restock_urgent"
	ActionRestockSoon   = "restock_soon"
	ActionSufficient    = "sufficient"
	ActionOverstock     = "overstock"
)

// Inventory urgency levels.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// TrendModel is a least-squares linear fit of a metric against its day index.
type TrendModel struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Direction string  `json:"direction"`
}

// SeasonalityProfile holds multiplicative revenue factors per calendar
// bucket: weekday 0-6 (Sunday=0), week of month 1-4, month 1-12. A factor is
// the bucket's mean revenue over the overall mean; buckets with no
// observations stay at the neutral 1.0.
type SeasonalityProfile struct {
	DayOfWeek   map[int]float64 `json:"day_of_week"`
	WeekOfMonth map[int]float64 `json:"week_of_month"`
	MonthOfYear map[int]float64 `json:"month_of_year"`
}

// ForecastPoint is the projection for a single future day.
type ForecastPoint struct {
	Date             time.Time `json:"date"`
	PredictedRevenue float64   `json:"predicted_revenue"`
	PredictedOrders  int       `json:"predicted_orders"`
	Confidence       float64   `json:"confidence"`
	LowerBound       float64   `json:"lower_bound"`
	UpperBound       float64   `json:"upper_bound"`
}

// CategoryForecast extrapolates a category's revenue from the growth between
// the two halves of the historical window.
type CategoryForecast struct {
	Category         string  `json:"category"`
	CurrentRevenue   float64 `json:"current_revenue"`
	PredictedRevenue float64 `json:"predicted_revenue"`
	GrowthRate       float64 `json:"growth_rate"`
	Trend            string  `json:"trend"`
}

// ProductForecast extrapolates a product's unit demand, with a restock hint.
type ProductForecast struct {
	ProductID           int64   `json:"product_id"`
	SKU                 string  `json:"sku"`
	Name                string  `json:"name"`
	CurrentUnits        int     `json:"current_units"`
	PredictedUnits      float64 `json:"predicted_units"`
	GrowthRate          float64 `json:"growth_rate"`
	Trend               string  `json:"trend"`
	NeedsRestock        bool    `json:"needs_restock"`
	RecommendedQuantity int     `json:"recommended_quantity"`
}

// InventoryRecommendation classifies a product's stock position against its
// recent consumption rate.
type InventoryRecommendation struct {
	ProductID           int64   `json:"product_id"`
	SKU                 string  `json:"sku"`
	Name                string  `json:"name"`
	CurrentStock        int     `json:"current_stock"`
	PredictedDemand     int     `json:"predicted_demand"`
	DaysOfStock         float64 `json:"days_of_stock"`
	Action              string  `json:"action"`
	Urgency             string  `json:"urgency"`
	RecommendedQuantity int     `json:"recommended_quantity"`
}

// ForecastSummary is the combined report consumed by the HTTP boundary.
type ForecastSummary struct {
	HistoricalStart          time.Time                 `json:"historical_start"`
	HistoricalEnd            time.Time                 `json:"historical_end"`
	ForecastStart            time.Time                 `json:"forecast_start"`
	ForecastEnd              time.Time                 `json:"forecast_end"`
	TotalHistoricalRevenue   float64                   `json:"total_historical_revenue"`
	TotalPredictedRevenue    float64                   `json:"total_predicted_revenue"`
	GrowthRate               float64                   `json:"growth_rate"`
	Trend                    string                    `json:"trend"`
	Seasonality              SeasonalityProfile        `json:"seasonality"`
	DailyForecasts           []ForecastPoint           `json:"daily_forecasts"`
	CategoryForecasts        []CategoryForecast        `json:"category_forecasts"`
	ProductForecasts         []ProductForecast         `json:"product_forecasts"`
	InventoryRecommendations []InventoryRecommendation `json:"inventory_recommendations"`
}

// AccuracyReport scores a backtested forecast against held-out actuals.
// Accuracy is max(0, 100-MAPE).
type AccuracyReport struct {
	TestDays int     `json:"test_days"`
	MAPE     float64 `json:"mape"`
	RMSE     float64 `json:"rmse"`
	Accuracy float64 `json:"accuracy"`
}
