package engine

import (
	"github.com/climatecoach/carbon-engine/internal/core/domain"
)

// DefaultWindowDays is the standard history window for pattern analysis.
const DefaultWindowDays = 30

// Fixed high-impact thresholds, compared against per-day averages.
// These are constants, not learned parameters.
const (
	transportThresholdKM   = 50.0
	energyThresholdKWH     = 30.0
	meatRatioThreshold     = 0.5
	shoppingThresholdItems = 20.0
)

// kWh-equivalent conversion for non-electric energy carriers, so one
// threshold covers the whole energy block.
const (
	gasKWHPerM3    = 10.55
	oilKWHPerLiter = 10.68
)

// Trend detection: the recent average must drift more than this many percent
// from the overall average to count as a trend.
const trendChangeThresholdPct = 5.0

// Analyzer derives per-category usage averages and high-impact flags from a
// window of raw activity records. It aggregates quantities (km, kWh, meals,
// items), not computed emissions, so it has no dependency on the calculator.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze computes daily averages over up to windowDays records and flags
// every category whose average exceeds its threshold. A history shorter
// than the window is fine; an empty history yields zero averages and no
// flags. Records are expected most recent first (the repository order).
func (a *Analyzer) Analyze(history []*domain.ActivityRecord, windowDays int) domain.HighImpactProfile {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if len(history) > windowDays {
		history = history[:windowDays]
	}

	profile := domain.HighImpactProfile{
		DaysObserved:         len(history),
		HighImpactCategories: []domain.Category{},
	}
	if len(history) == 0 {
		return profile
	}

	var (
		totalDistance float64
		totalEnergy   float64
		meatMeals     int
		vegMeals      int
		totalItems    float64
	)

	for _, record := range history {
		for _, trip := range record.Transport.Trips {
			count := trip.TripCount
			if count < 1 {
				count = 1
			}
			totalDistance += trip.DistanceKM * float64(count)
		}
		totalDistance += record.Transport.DistanceKM

		totalEnergy += record.Energy.ElectricityKWH +
			record.Energy.NaturalGasM3*gasKWHPerM3 +
			record.Energy.HeatingOilLiters*oilKWHPerLiter

		meatMeals += record.Food.MeatMealCount
		vegMeals += record.Food.VegMealCount

		for _, count := range record.Shopping.Items {
			totalItems += float64(count)
		}
		totalItems += float64(record.Shopping.TotalItemCount)
	}

	days := float64(len(history))
	profile.AvgDailyDistanceKM = totalDistance / days
	profile.AvgDailyEnergyKWH = totalEnergy / days
	profile.AvgDailyShoppingItems = totalItems / days

	if meals := meatMeals + vegMeals; meals > 0 {
		profile.MeatMealRatio = float64(meatMeals) / float64(meals)
	}

	if profile.AvgDailyDistanceKM > transportThresholdKM {
		profile.HighImpactCategories = append(profile.HighImpactCategories, domain.CategoryTransport)
	}
	if profile.AvgDailyEnergyKWH > energyThresholdKWH {
		profile.HighImpactCategories = append(profile.HighImpactCategories, domain.CategoryEnergy)
	}
	if profile.MeatMealRatio > meatRatioThreshold {
		profile.HighImpactCategories = append(profile.HighImpactCategories, domain.CategoryFood)
	}
	if profile.AvgDailyShoppingItems > shoppingThresholdItems {
		profile.HighImpactCategories = append(profile.HighImpactCategories, domain.CategoryShopping)
	}

	return profile
}

// Summarize aggregates stored footprints into totals, a daily average, and
// a trend label comparing the last seven tracked days against the whole
// window. Footprints are expected most recent first.
func (a *Analyzer) Summarize(footprints []*domain.StoredFootprint) domain.CarbonSummary {
	summary := domain.CarbonSummary{
		DaysTracked: len(footprints),
		Trend:       domain.TrendInsufficientData,
	}
	if len(footprints) == 0 {
		return summary
	}

	summary.BestDayCO2 = footprints[0].Footprint.TotalCO2
	summary.WorstDayCO2 = footprints[0].Footprint.TotalCO2

	var recentTotal float64
	recentDays := 0

	for i, fp := range footprints {
		total := fp.Footprint.TotalCO2
		summary.TotalCO2 += total

		if total < summary.BestDayCO2 {
			summary.BestDayCO2 = total
		}
		if total > summary.WorstDayCO2 {
			summary.WorstDayCO2 = total
		}

		if i < 7 {
			recentTotal += total
			recentDays++
		}
	}

	days := float64(len(footprints))
	summary.TotalCO2 = round2(summary.TotalCO2)
	summary.AvgDailyCO2 = round2(summary.TotalCO2 / days)
	summary.OverallAverage = summary.AvgDailyCO2
	summary.RecentAverage = round2(recentTotal / float64(recentDays))

	if len(footprints) < 2 {
		return summary
	}

	if summary.OverallAverage > 0 {
		summary.ChangeRate = round2((summary.RecentAverage - summary.OverallAverage) / summary.OverallAverage * 100)
	}

	switch {
	case summary.ChangeRate > trendChangeThresholdPct:
		summary.Trend = domain.TrendIncreasing
	case summary.ChangeRate < -trendChangeThresholdPct:
		summary.Trend = domain.TrendDecreasing
	default:
		summary.Trend = domain.TrendStable
	}

	return summary
}
