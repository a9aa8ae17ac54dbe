package domain

// Footprint is the computed emissions result for a single activity record.
// It is a value object: the calculator produces it, nothing mutates it.
// TotalCO2 is always the exact sum of the six subtotals, and the breakdown
// percentages sum to ~100 whenever the total is positive (all 0.0 otherwise).
type Footprint struct {
	TransportCO2 float64 `json:"transport_co2" db:"transport_co2"`
	EnergyCO2    float64 `json:"energy_co2" db:"energy_co2"`
	FoodCO2      float64 `json:"food_co2" db:"food_co2"`
	ShoppingCO2  float64 `json:"shopping_co2" db:"shopping_co2"`
	WasteCO2     float64 `json:"waste_co2" db:"waste_co2"`
	WaterCO2     float64 `json:"water_co2" db:"water_co2"`
	TotalCO2     float64 `json:"total_co2" db:"total_co2"`

	Breakdown map[Category]float64 `json:"breakdown"`
}

// Subtotal returns the kg CO2 figure for one category.
func (f Footprint) Subtotal(c Category) float64 {
	switch c {
	case CategoryTransport:
		return f.TransportCO2
	case CategoryEnergy:
		return f.EnergyCO2
	case CategoryFood:
		return f.FoodCO2
	case CategoryShopping:
		return f.ShoppingCO2
	case CategoryWaste:
		return f.WasteCO2
	case CategoryWater:
		return f.WaterCO2
	}
	return 0
}
