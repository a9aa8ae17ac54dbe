package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
)

func historyOf(days int, build func(day int, rec *domain.ActivityRecord)) []*domain.ActivityRecord {
	base := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	history := make([]*domain.ActivityRecord, 0, days)
	for i := 0; i < days; i++ {
		rec := domain.NewActivityRecord("user-123", base.AddDate(0, 0, -i))
		build(i, rec)
		history = append(history, rec)
	}
	return history
}

func TestAnalyzer_Analyze(t *testing.T) {
	analyzer := engine.NewAnalyzer()

	t.Run("Flags transport when average distance exceeds 50 km/day", func(t *testing.T) {
		history := historyOf(10, func(day int, rec *domain.ActivityRecord) {
			rec.Transport.Trips = []domain.Trip{{Mode: "car", DistanceKM: 60}}
		})

		profile := analyzer.Analyze(history, engine.DefaultWindowDays)

		assert.Equal(t, 10, profile.DaysObserved)
		assert.InDelta(t, 60.0, profile.AvgDailyDistanceKM, 0.001)
		assert.Equal(t, []domain.Category{domain.CategoryTransport}, profile.HighImpactCategories)
	})

	t.Run("No flags when usage stays under every threshold", func(t *testing.T) {
		history := historyOf(5, func(day int, rec *domain.ActivityRecord) {
			rec.Transport.Trips = []domain.Trip{{Mode: "bus", DistanceKM: 10}}
			rec.Energy.ElectricityKWH = 8
			rec.Food.MeatMealCount = 1
			rec.Food.VegMealCount = 2
		})

		profile := analyzer.Analyze(history, engine.DefaultWindowDays)

		assert.Empty(t, profile.HighImpactCategories)
		assert.InDelta(t, 1.0/3.0, profile.MeatMealRatio, 0.001)
	})

	t.Run("Gas and oil convert to kWh equivalents for the energy flag", func(t *testing.T) {
		history := historyOf(3, func(day int, rec *domain.ActivityRecord) {
			rec.Energy.NaturalGasM3 = 3 // 31.65 kWh-eq/day
		})

		profile := analyzer.Analyze(history, engine.DefaultWindowDays)

		assert.InDelta(t, 31.65, profile.AvgDailyEnergyKWH, 0.001)
		assert.Contains(t, profile.HighImpactCategories, domain.CategoryEnergy)
	})

	t.Run("Meat ratio above half flags food", func(t *testing.T) {
		history := historyOf(4, func(day int, rec *domain.ActivityRecord) {
			rec.Food.MeatMealCount = 2
			rec.Food.VegMealCount = 1
		})

		profile := analyzer.Analyze(history, engine.DefaultWindowDays)

		assert.InDelta(t, 2.0/3.0, profile.MeatMealRatio, 0.001)
		assert.Equal(t, []domain.Category{domain.CategoryFood}, profile.HighImpactCategories)
	})

	t.Run("Flag order follows the fixed category order", func(t *testing.T) {
		history := historyOf(2, func(day int, rec *domain.ActivityRecord) {
			rec.Shopping.TotalItemCount = 25
			rec.Transport.DistanceKM = 80
			rec.Transport.Mode = "car"
		})

		profile := analyzer.Analyze(history, engine.DefaultWindowDays)

		assert.Equal(t, []domain.Category{domain.CategoryTransport, domain.CategoryShopping}, profile.HighImpactCategories)
	})

	t.Run("Edge: empty history yields zero averages and no flags", func(t *testing.T) {
		profile := analyzer.Analyze(nil, engine.DefaultWindowDays)

		assert.Equal(t, 0, profile.DaysObserved)
		assert.Equal(t, 0.0, profile.AvgDailyDistanceKM)
		assert.Empty(t, profile.HighImpactCategories)
	})

	t.Run("Window: history longer than the window is truncated", func(t *testing.T) {
		history := historyOf(40, func(day int, rec *domain.ActivityRecord) {
			rec.Transport.DistanceKM = 10
			rec.Transport.Mode = "car"
		})

		profile := analyzer.Analyze(history, 30)
		assert.Equal(t, 30, profile.DaysObserved)
	})
}

func storedFootprints(totals []float64) []*domain.StoredFootprint {
	base := time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)
	footprints := make([]*domain.StoredFootprint, 0, len(totals))
	for i, total := range totals {
		footprints = append(footprints, &domain.StoredFootprint{
			UserID:    "user-123",
			Date:      base.AddDate(0, 0, -i),
			Footprint: domain.Footprint{TotalCO2: total},
		})
	}
	return footprints
}

func TestAnalyzer_Summarize(t *testing.T) {
	analyzer := engine.NewAnalyzer()

	t.Run("Aggregates totals, best and worst days", func(t *testing.T) {
		summary := analyzer.Summarize(storedFootprints([]float64{10, 20, 15}))

		assert.Equal(t, 3, summary.DaysTracked)
		assert.Equal(t, 45.0, summary.TotalCO2)
		assert.Equal(t, 15.0, summary.AvgDailyCO2)
		assert.Equal(t, 10.0, summary.BestDayCO2)
		assert.Equal(t, 20.0, summary.WorstDayCO2)
	})

	t.Run("Trend: recent week well below overall reads decreasing", func(t *testing.T) {
		// 7 recent light days followed by 14 heavy ones.
		totals := make([]float64, 0, 21)
		for i := 0; i < 7; i++ {
			totals = append(totals, 5)
		}
		for i := 0; i < 14; i++ {
			totals = append(totals, 20)
		}

		summary := analyzer.Summarize(storedFootprints(totals))

		assert.Equal(t, domain.TrendDecreasing, summary.Trend)
		assert.Less(t, summary.ChangeRate, -5.0)
	})

	t.Run("Trend: recent week above overall reads increasing", func(t *testing.T) {
		totals := make([]float64, 0, 21)
		for i := 0; i < 7; i++ {
			totals = append(totals, 20)
		}
		for i := 0; i < 14; i++ {
			totals = append(totals, 5)
		}

		summary := analyzer.Summarize(storedFootprints(totals))
		assert.Equal(t, domain.TrendIncreasing, summary.Trend)
	})

	t.Run("Trend: small drift stays stable", func(t *testing.T) {
		summary := analyzer.Summarize(storedFootprints([]float64{10, 10.2, 9.8, 10, 10.1, 9.9, 10, 10, 10}))
		assert.Equal(t, domain.TrendStable, summary.Trend)
	})

	t.Run("Edge: fewer than two days is insufficient data", func(t *testing.T) {
		assert.Equal(t, domain.TrendInsufficientData, analyzer.Summarize(nil).Trend)
		assert.Equal(t, domain.TrendInsufficientData, analyzer.Summarize(storedFootprints([]float64{12})).Trend)
	})
}
