package engine

import "github.com/climatecoach/carbon-engine/internal/core/domain"

// Legacy schema factors: kg CO2 per meat meal, per veg meal, and per
// unspecified shopping item.
const (
	MeatMealFactorKG     = 2.5
	VegMealFactorKG      = 0.5
	LegacyShoppingItemKG = 0.1
)

// FactorTable maps (category, sub-type) to a kg-CO2-per-unit emission
// factor, with one default factor per category for unknown sub-types.
// It is immutable configuration: build it once, inject it into the
// calculator, and share it freely between goroutines.
type FactorTable struct {
	factors  map[domain.Category]map[string]float64
	defaults map[domain.Category]float64
}

// NewFactorTable copies its inputs so later mutation of the arguments
// cannot leak into the table.
func NewFactorTable(factors map[domain.Category]map[string]float64, defaults map[domain.Category]float64) FactorTable {
	copied := make(map[domain.Category]map[string]float64, len(factors))
	for category, subTypes := range factors {
		inner := make(map[string]float64, len(subTypes))
		for subType, factor := range subTypes {
			inner[subType] = factor
		}
		copied[category] = inner
	}

	copiedDefaults := make(map[domain.Category]float64, len(defaults))
	for category, factor := range defaults {
		copiedDefaults[category] = factor
	}

	return FactorTable{factors: copied, defaults: copiedDefaults}
}

// Factor resolves the emission factor for a sub-type. Unknown sub-types are
// never an error: they resolve to the category default so the calculator
// stays total over its input domain.
func (t FactorTable) Factor(category domain.Category, subType string) float64 {
	if subTypes, ok := t.factors[category]; ok {
		if factor, ok := subTypes[subType]; ok {
			return factor
		}
	}
	return t.defaults[category]
}

// Default returns the category fallback factor.
func (t FactorTable) Default(category domain.Category) float64 {
	return t.defaults[category]
}

// DefaultFactorTable returns the audited factor constants the service ships
// with. All values are kg CO2 per unit (km, kWh, m³, liter, kg, or item).
func DefaultFactorTable() FactorTable {
	return NewFactorTable(
		map[domain.Category]map[string]float64{
			domain.CategoryTransport: {
				"car":          0.2,
				"bus":          0.05,
				"train":        0.04,
				"bike":         0.0,
				"walk":         0.0,
				"plane":        0.25,
				"electric_car": 0.06,
				"hybrid_car":   0.12,
				"motorcycle":   0.15,
				"scooter":      0.08,
			},
			domain.CategoryEnergy: {
				"electricity": 0.5,
				"natural_gas": 2.0,
				"heating_oil": 2.7,
				"propane":     1.6,
				"solar":       0.0,
				"wind":        0.0,
			},
			domain.CategoryFood: {
				"beef":        13.3,
				"lamb":        13.3,
				"pork":        5.8,
				"chicken":     2.9,
				"fish":        3.0,
				"eggs":        1.4,
				"dairy":       1.4,
				"vegetables":  0.4,
				"fruits":      0.4,
				"grains":      0.5,
				"nuts":        0.3,
				"plant_based": 0.3,
			},
			domain.CategoryShopping: {
				"clothing":    0.5,
				"electronics": 2.0,
				"furniture":   5.0,
				"books":       0.1,
				"cosmetics":   0.2,
				"household":   0.3,
				"food_items":  0.1,
				"second_hand": 0.05,
			},
			domain.CategoryWaste: {
				"landfill":   0.5,
				"recycling":  0.1,
				"composting": 0.0,
			},
			domain.CategoryWater: {
				"usage": 0.0003,
			},
		},
		map[domain.Category]float64{
			domain.CategoryTransport: 0.2,
			domain.CategoryEnergy:    0.5,
			domain.CategoryFood:      0.5,
			domain.CategoryShopping:  0.1,
			domain.CategoryWaste:     0.5,
			domain.CategoryWater:     0.0003,
		},
	)
}
