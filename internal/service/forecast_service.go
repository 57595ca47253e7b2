package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/resale-ops/backend-go/internal/cache"
	"github.com/resale-ops/backend-go/internal/config"
	"github.com/resale-ops/backend-go/internal/domain"
	"github.com/resale-ops/backend-go/internal/forecast"
	"github.com/resale-ops/backend-go/internal/repository"
)

const (
	defaultHistoricalDays = 90
	defaultForecastDays   = 30
	defaultBacktestDays   = 30

	// Extra history fetched ahead of the held-out test slice so the
	// backtest has a full training window to fit against.
	backtestTrainDays = 90
)

// ForecastService wires the data store to the pure forecasting functions. All
// numeric work happens on already-fetched aggregates; the service only
// fetches, buckets, and composes.
type ForecastService struct {
	repo  repository.SalesRepository
	cache cache.ForecastSummaryCache
	cfg   config.ForecastConfig
}

func NewForecastService(repo repository.SalesRepository, cacheImpl cache.ForecastSummaryCache, cfg config.ForecastConfig) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ForecastService{repo: repo, cache: cacheImpl, cfg: cfg}
}

// HistoricalSeries fetches order facts for the trailing daysBack days and
// buckets them into one DailyRecord per UTC calendar day, up to and including
// yesterday. Days with no orders appear with all-zero values.
func (s *ForecastService) HistoricalSeries(ctx context.Context, daysBack int) ([]domain.DailyRecord, error) {
	if daysBack <= 0 {
		daysBack = s.historicalDays()
	}

	to := startOfDayUTC(time.Now())
	from := to.AddDate(0, 0, -daysBack)

	facts, err := s.repo.OrderFacts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return bucketDaily(facts, from, daysBack), nil
}

// GenerateSummary is the single orchestration entry point. Zero or negative
// window arguments fall back to the configured defaults. An insufficient
// history still yields a well-formed summary with empty collections.
func (s *ForecastService) GenerateSummary(ctx context.Context, historicalDays, forecastDays int) (*domain.ForecastSummary, error) {
	if historicalDays <= 0 {
		historicalDays = s.historicalDays()
	}
	if forecastDays <= 0 {
		forecastDays = s.forecastDays()
	}

	if summary, ok, err := s.cache.GetSummary(ctx, historicalDays, forecastDays); err == nil && ok {
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get summary failed")
	}

	to := startOfDayUTC(time.Now())
	from := to.AddDate(0, 0, -historicalDays)
	mid := from.AddDate(0, 0, historicalDays/2)

	var (
		history       []domain.DailyRecord
		categorySales []domain.CategorySale
		productSales  []domain.ProductSale
		stocks        []domain.ProductStock
	)

	// The four fetches hit independent aggregates; a failure of any one
	// fails the whole summary.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		facts, err := s.repo.OrderFacts(gctx, from, to)
		if err != nil {
			return err
		}
		history = bucketDaily(facts, from, historicalDays)
		return nil
	})
	g.Go(func() error {
		var err error
		categorySales, err = s.repo.CategorySales(gctx, from, mid, to)
		return err
	})
	g.Go(func() error {
		var err error
		productSales, err = s.repo.ProductSales(gctx, from, mid, to)
		return err
	})
	g.Go(func() error {
		var err error
		stocks, err = s.repo.ProductStocks(gctx, forecast.TrailingSalesDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := s.composeSummary(history, categorySales, productSales, stocks, historicalDays, forecastDays)

	if err := s.cache.SetSummary(ctx, historicalDays, forecastDays, summary); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set summary failed")
	}

	return summary, nil
}

// EvaluateAccuracy backtests the generator against the trailing testDays of
// known history.
func (s *ForecastService) EvaluateAccuracy(ctx context.Context, testDays int) (*domain.AccuracyReport, error) {
	if testDays <= 0 {
		testDays = s.backtestDays()
	}

	history, err := s.HistoricalSeries(ctx, testDays+backtestTrainDays)
	if err != nil {
		return nil, err
	}

	report := forecast.EvaluateAccuracy(history, testDays)
	if report.Accuracy == 0 && report.MAPE == 0 && report.RMSE == 0 {
		log.Warn().Int("test_days", testDays).Msg("forecast: backtest had insufficient history")
	}
	return &report, nil
}

// InvalidateCache drops every cached summary. Report ingestion calls this
// after new orders land.
func (s *ForecastService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *ForecastService) composeSummary(history []domain.DailyRecord, categorySales []domain.CategorySale, productSales []domain.ProductSale, stocks []domain.ProductStock, historicalDays, forecastDays int) *domain.ForecastSummary {
	profile := forecast.DetectSeasonality(history)

	revenue := make([]float64, len(history))
	for i, r := range history {
		revenue[i] = r.Revenue
	}
	trend := forecast.CalculateTrend(revenue)

	points := forecast.ForecastDailySales(history, profile, forecastDays)
	if len(points) == 0 {
		log.Warn().
			Int("history_days", len(history)).
			Msg("forecast: insufficient history, returning empty daily forecasts")
	}

	summary := &domain.ForecastSummary{
		Trend:                    trend.Direction,
		Seasonality:              profile,
		DailyForecasts:           points,
		CategoryForecasts:        forecast.ForecastCategories(categorySales, historicalDays, forecastDays),
		ProductForecasts:         forecast.ForecastProducts(productSales, historicalDays, forecastDays, s.topProducts()),
		InventoryRecommendations: forecast.RecommendInventory(stocks, forecastDays),
	}
	if summary.DailyForecasts == nil {
		summary.DailyForecasts = make([]domain.ForecastPoint, 0)
	}
	if summary.CategoryForecasts == nil {
		summary.CategoryForecasts = make([]domain.CategoryForecast, 0)
	}
	if summary.ProductForecasts == nil {
		summary.ProductForecasts = make([]domain.ProductForecast, 0)
	}
	if summary.InventoryRecommendations == nil {
		summary.InventoryRecommendations = make([]domain.InventoryRecommendation, 0)
	}

	if len(history) > 0 {
		summary.HistoricalStart = history[0].Date
		summary.HistoricalEnd = history[len(history)-1].Date
	}
	summary.ForecastStart, summary.ForecastEnd = forecast.ForecastWindow(points)

	var historicalTotal float64
	for _, r := range history {
		historicalTotal += r.Revenue
	}
	summary.TotalHistoricalRevenue = math.Round(historicalTotal)

	var predictedTotal float64
	for _, p := range points {
		predictedTotal += p.PredictedRevenue
	}
	summary.TotalPredictedRevenue = math.Round(predictedTotal)

	// Growth compares the forecast total with the trailing actuals of the
	// same length, so the two windows are directly comparable.
	var trailingTotal float64
	for _, r := range tail(history, forecastDays) {
		trailingTotal += r.Revenue
	}
	if len(points) > 0 {
		summary.GrowthRate = forecast.GrowthRate(trailingTotal, predictedTotal)
	}

	return summary
}

func bucketDaily(facts []domain.OrderFact, from time.Time, days int) []domain.DailyRecord {
	byDay := make(map[time.Time]*domain.DailyRecord, days)
	records := make([]domain.DailyRecord, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		records = append(records, domain.DailyRecord{Date: day})
	}
	for i := range records {
		byDay[records[i].Date] = &records[i]
	}

	for _, f := range facts {
		day := startOfDayUTC(f.OrderedAt)
		rec, ok := byDay[day]
		if !ok {
			continue
		}
		rec.Revenue += f.Total
		rec.Orders++
		rec.Items += f.Items
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func tail(records []domain.DailyRecord, n int) []domain.DailyRecord {
	if n >= len(records) {
		return records
	}
	return records[len(records)-n:]
}

func (s *ForecastService) historicalDays() int {
	if s.cfg.HistoricalDays > 0 {
		return s.cfg.HistoricalDays
	}
	return defaultHistoricalDays
}

func (s *ForecastService) forecastDays() int {
	if s.cfg.ForecastDays > 0 {
		return s.cfg.ForecastDays
	}
	return defaultForecastDays
}

func (s *ForecastService) backtestDays() int {
	if s.cfg.BacktestDays > 0 {
		return s.cfg.BacktestDays
	}
	return defaultBacktestDays
}

func (s *ForecastService) topProducts() int {
	return s.cfg.TopProducts
}
