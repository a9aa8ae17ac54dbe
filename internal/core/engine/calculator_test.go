package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/engine"
)

func testRecord() *domain.ActivityRecord {
	return domain.NewActivityRecord("user-123", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
}

func TestCalculator_Compute(t *testing.T) {
	calc := engine.NewCalculator(engine.DefaultFactorTable())

	t.Run("Success: car commute plus electricity", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Mode = "car"
		rec.Transport.DistanceKM = 25
		rec.Energy.ElectricityKWH = 15

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		assert.Equal(t, 5.0, fp.TransportCO2)
		assert.Equal(t, 7.5, fp.EnergyCO2)
		assert.Equal(t, 12.5, fp.TotalCO2)
		assert.Equal(t, 40.0, fp.Breakdown[domain.CategoryTransport])
		assert.Equal(t, 60.0, fp.Breakdown[domain.CategoryEnergy])
		assert.Equal(t, 0.0, fp.Breakdown[domain.CategoryFood])
	})

	t.Run("Edge: empty record yields all zeros", func(t *testing.T) {
		fp, err := calc.Compute(*testRecord())
		require.NoError(t, err)

		assert.Equal(t, 0.0, fp.TotalCO2)
		for _, category := range domain.Categories {
			assert.Equal(t, 0.0, fp.Subtotal(category))
			assert.Equal(t, 0.0, fp.Breakdown[category])
		}
	})

	t.Run("Dual schema: itemized food and legacy meals are summed", func(t *testing.T) {
		rec := testRecord()
		rec.Food.MeatMealCount = 1
		rec.Food.VegMealCount = 2
		rec.Food.Items = map[string]float64{
			"chicken":    0.5,
			"vegetables": 0.5,
		}

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		// 1*2.5 + 2*0.5 + 0.5*2.9 + 0.5*0.4
		assert.Equal(t, 5.15, fp.FoodCO2)
	})

	t.Run("Corrected mode: itemized data suppresses legacy fields", func(t *testing.T) {
		corrected := engine.NewCalculator(engine.DefaultFactorTable(), engine.WithItemizedPrecedence())

		rec := testRecord()
		rec.Food.MeatMealCount = 1
		rec.Food.Items = map[string]float64{"chicken": 1.0}
		rec.Transport.Mode = "car"
		rec.Transport.DistanceKM = 10
		rec.Transport.Trips = []domain.Trip{{Mode: "bus", DistanceKM: 10}}

		fp, err := corrected.Compute(*rec)
		require.NoError(t, err)

		assert.Equal(t, 2.9, fp.FoodCO2)
		assert.Equal(t, 0.5, fp.TransportCO2)
	})

	t.Run("Trips: count scales distance and zero count means one trip", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Trips = []domain.Trip{
			{Mode: "bus", DistanceKM: 10, TripCount: 2},
			{Mode: "train", DistanceKM: 5},
		}

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		// 10*2*0.05 + 5*1*0.04
		assert.Equal(t, 1.2, fp.TransportCO2)
	})

	t.Run("Unknown sub-type falls back to category default", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Trips = []domain.Trip{{Mode: "hoverboard", DistanceKM: 10}}

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		assert.Equal(t, 2.0, fp.TransportCO2)
	})

	t.Run("Invariant: total is exactly the sum of rounded subtotals", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Mode = "car"
		rec.Transport.DistanceKM = 13.37
		rec.Energy.NaturalGasM3 = 1.111
		rec.Food.Items = map[string]float64{"beef": 0.123}
		rec.Waste.LandfillKG = 0.777
		rec.Water.UsageLiters = 142

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		sum := fp.TransportCO2 + fp.EnergyCO2 + fp.FoodCO2 + fp.ShoppingCO2 + fp.WasteCO2 + fp.WaterCO2
		assert.Equal(t, sum, fp.TotalCO2)
	})

	t.Run("Invariant: breakdown percentages sum to roughly 100", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Mode = "car"
		rec.Transport.DistanceKM = 7.3
		rec.Energy.ElectricityKWH = 4.4
		rec.Food.MeatMealCount = 1
		rec.Shopping.TotalItemCount = 3
		rec.Waste.RecyclingKG = 2.5

		fp, err := calc.Compute(*rec)
		require.NoError(t, err)

		var pctSum float64
		for _, category := range domain.Categories {
			pctSum += fp.Breakdown[category]
		}
		assert.InDelta(t, 100.0, pctSum, 0.3)
	})

	t.Run("Determinism: same record computes the same footprint", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Trips = []domain.Trip{{Mode: "plane", DistanceKM: 800}}
		rec.Food.Items = map[string]float64{"beef": 0.3, "dairy": 0.2, "grains": 0.15}

		first, err := calc.Compute(*rec)
		require.NoError(t, err)
		second, err := calc.Compute(*rec)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Fail: negative quantity is rejected, never clamped", func(t *testing.T) {
		rec := testRecord()
		rec.Energy.ElectricityKWH = -1

		_, err := calc.Compute(*rec)
		assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
	})

	t.Run("Fail: negative trip count is rejected", func(t *testing.T) {
		rec := testRecord()
		rec.Transport.Trips = []domain.Trip{{Mode: "car", DistanceKM: 5, TripCount: -1}}

		_, err := calc.Compute(*rec)
		assert.ErrorIs(t, err, domain.ErrNegativeTripCount)
	})

	t.Run("Fail: missing user id is rejected", func(t *testing.T) {
		rec := testRecord()
		rec.UserID = "  "

		_, err := calc.Compute(*rec)
		assert.ErrorIs(t, err, domain.ErrActivityInvalidUserID)
	})
}

func TestFactorTable(t *testing.T) {
	t.Run("Immutability: mutating inputs does not leak into the table", func(t *testing.T) {
		factors := map[domain.Category]map[string]float64{
			domain.CategoryTransport: {"car": 0.2},
		}
		defaults := map[domain.Category]float64{domain.CategoryTransport: 0.1}

		table := engine.NewFactorTable(factors, defaults)
		factors[domain.CategoryTransport]["car"] = 99
		defaults[domain.CategoryTransport] = 99

		assert.Equal(t, 0.2, table.Factor(domain.CategoryTransport, "car"))
		assert.Equal(t, 0.1, table.Default(domain.CategoryTransport))
	})

	t.Run("Defaults: every category has a fallback factor", func(t *testing.T) {
		table := engine.DefaultFactorTable()
		for _, category := range domain.Categories {
			assert.Greater(t, table.Default(category), 0.0, "category %s", category)
		}
	})

	t.Run("Zero emission modes resolve to zero, not the default", func(t *testing.T) {
		table := engine.DefaultFactorTable()
		assert.Equal(t, 0.0, table.Factor(domain.CategoryTransport, "bike"))
		assert.Equal(t, 0.0, table.Factor(domain.CategoryWaste, "composting"))
	})
}
