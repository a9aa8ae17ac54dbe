package engine

import (
	"math"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
)

// Calculator turns one activity record into a footprint. It is pure and
// stateless: the same record always yields the same footprint, and
// concurrent calls need no synchronization.
type Calculator struct {
	factors FactorTable

	// itemizedPrecedence switches off the historical additive behavior:
	// when a category carries both its itemized and its legacy sub-schema,
	// the default is to sum BOTH contributions (which double-counts).
	// With precedence enabled the itemized schema wins and the legacy
	// fields are ignored for that category.
	itemizedPrecedence bool
}

type CalculatorOption func(*Calculator)

// WithItemizedPrecedence enables the corrected dual-schema mode: itemized
// data suppresses the legacy fields instead of being added to them.
func WithItemizedPrecedence() CalculatorOption {
	return func(c *Calculator) {
		c.itemizedPrecedence = true
	}
}

func NewCalculator(factors FactorTable, opts ...CalculatorOption) *Calculator {
	c := &Calculator{factors: factors}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute calculates the emissions footprint for one record. It fails only
// on validation errors (negative quantities, missing identity fields);
// unknown sub-types fall back to the category default factor. Computation
// is all-or-nothing: on error no partial footprint is returned.
//
// Category subtotals are rounded half-up to 2 decimals and the total is the
// exact sum of the rounded subtotals, so conservation holds to the last bit.
// Breakdown percentages are rounded half-up to 1 decimal and are all 0.0
// when the total is zero.
func (c *Calculator) Compute(record domain.ActivityRecord) (domain.Footprint, error) {
	if err := record.Validate(); err != nil {
		return domain.Footprint{}, err
	}

	fp := domain.Footprint{
		TransportCO2: round2(c.transportCO2(record.Transport)),
		EnergyCO2:    round2(c.energyCO2(record.Energy)),
		FoodCO2:      round2(c.foodCO2(record.Food)),
		ShoppingCO2:  round2(c.shoppingCO2(record.Shopping)),
		WasteCO2:     round2(c.wasteCO2(record.Waste)),
		WaterCO2:     round2(c.waterCO2(record.Water)),
	}
	fp.TotalCO2 = fp.TransportCO2 + fp.EnergyCO2 + fp.FoodCO2 +
		fp.ShoppingCO2 + fp.WasteCO2 + fp.WaterCO2

	fp.Breakdown = make(map[domain.Category]float64, len(domain.Categories))
	for _, category := range domain.Categories {
		if fp.TotalCO2 > 0 {
			fp.Breakdown[category] = round1(fp.Subtotal(category) / fp.TotalCO2 * 100)
		} else {
			fp.Breakdown[category] = 0.0
		}
	}

	return fp, nil
}

func (c *Calculator) transportCO2(t domain.TransportActivity) float64 {
	var total float64

	for _, trip := range t.Trips {
		count := trip.TripCount
		if count < 1 {
			count = 1
		}
		total += trip.DistanceKM * float64(count) * c.factors.Factor(domain.CategoryTransport, trip.Mode)
	}

	if c.itemizedPrecedence && len(t.Trips) > 0 {
		return total
	}

	total += t.DistanceKM * c.factors.Factor(domain.CategoryTransport, t.Mode)

	return total
}

func (c *Calculator) energyCO2(e domain.EnergyActivity) float64 {
	return e.ElectricityKWH*c.factors.Factor(domain.CategoryEnergy, "electricity") +
		e.NaturalGasM3*c.factors.Factor(domain.CategoryEnergy, "natural_gas") +
		e.HeatingOilLiters*c.factors.Factor(domain.CategoryEnergy, "heating_oil")
}

func (c *Calculator) foodCO2(f domain.FoodActivity) float64 {
	var total float64

	for subType, kg := range f.Items {
		total += kg * c.factors.Factor(domain.CategoryFood, subType)
	}

	if c.itemizedPrecedence && len(f.Items) > 0 {
		return total
	}

	total += float64(f.MeatMealCount) * MeatMealFactorKG
	total += float64(f.VegMealCount) * VegMealFactorKG

	return total
}

func (c *Calculator) shoppingCO2(s domain.ShoppingActivity) float64 {
	var total float64

	for subType, count := range s.Items {
		total += float64(count) * c.factors.Factor(domain.CategoryShopping, subType)
	}

	if c.itemizedPrecedence && len(s.Items) > 0 {
		return total
	}

	total += float64(s.TotalItemCount) * LegacyShoppingItemKG

	return total
}

func (c *Calculator) wasteCO2(w domain.WasteActivity) float64 {
	return w.LandfillKG*c.factors.Factor(domain.CategoryWaste, "landfill") +
		w.RecyclingKG*c.factors.Factor(domain.CategoryWaste, "recycling") +
		w.CompostingKG*c.factors.Factor(domain.CategoryWaste, "composting")
}

func (c *Calculator) waterCO2(w domain.WaterActivity) float64 {
	return w.UsageLiters * c.factors.Factor(domain.CategoryWater, "usage")
}

// Rounding policy: half away from zero (math.Round). All quantities are
// non-negative, so this is plain half-up everywhere, and the same policy
// applies to subtotals and percentages alike.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
