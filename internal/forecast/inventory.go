package forecast

import (
	"math"

	"github.com/resale-ops/backend-go/internal/domain"
)

const (
	// TrailingSalesDays is the window the daily sales rate is derived from.
	TrailingSalesDays = 30

	// noConsumptionDays is the days-of-stock sentinel for products with no
	// recent sales: effectively infinite cover.
	noConsumptionDays = 999
)

// RecommendInventory converts trailing-30-day sales rates into restock
// recommendations for the forecast horizon. Products that sell nothing and
// classify as sufficient generate no actionable signal and are left out.
func RecommendInventory(stocks []domain.ProductStock, horizonDays int) []domain.InventoryRecommendation {
	out := make([]domain.InventoryRecommendation, 0, len(stocks))
	for _, s := range stocks {
		rec, actionable := recommendProduct(s, horizonDays)
		if !actionable {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func recommendProduct(s domain.ProductStock, horizonDays int) (domain.InventoryRecommendation, bool) {
	rate := float64(s.UnitsSold30d) / TrailingSalesDays
	demand := int(math.Ceil(rate * float64(horizonDays)))

	daysOfStock := float64(noConsumptionDays)
	action := domain.ActionSufficient
	urgency := domain.UrgencyLow
	if rate > 0 {
		daysOfStock = float64(s.CurrentStock) / rate
		action, urgency = classifyStock(daysOfStock)
	}

	recommended := 0
	if action == domain.ActionRestockUrgent || action == domain.ActionRestockSoon {
		if q := demand - s.CurrentStock; q > 0 {
			recommended = q
		}
	}

	rec := domain.InventoryRecommendation{
		ProductID:           s.ProductID,
		SKU:                 s.SKU,
		Name:                s.Name,
		CurrentStock:        s.CurrentStock,
		PredictedDemand:     demand,
		DaysOfStock:         daysOfStock,
		Action:              action,
		Urgency:             urgency,
		RecommendedQuantity: recommended,
	}

	actionable := !(rate == 0 && action == domain.ActionSufficient)
	return rec, actionable
}

// classifyStock thresholds are evaluated in order: running out inside a week
// beats every other condition, then inside two weeks, then sitting on more
// than two months of cover.
func classifyStock(daysOfStock float64) (action, urgency string) {
	switch {
	case daysOfStock < 7:
		return domain.ActionRestockUrgent, domain.UrgencyHigh
	case daysOfStock < 14:
		return domain.ActionRestockSoon, domain.UrgencyMedium
	case daysOfStock > 60:
		return domain.ActionOverstock, domain.UrgencyLow
	default:
		return domain.ActionSufficient, domain.UrgencyLow
	}
}
