package domain

import "errors"

var (
	ErrInvalidDietPreference      = errors.New("invalid diet preference")
	ErrInvalidTransportPreference = errors.New("invalid transport preference")
	ErrInvalidHouseholdSize       = errors.New("household size must be at least 1")
)

const (
	DietOmnivore    = "omnivore"
	DietPescatarian = "pescatarian"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"

	TransportPrefCar    = "car"
	TransportPrefPublic = "public"
	TransportPrefBike   = "bike"
	TransportPrefWalk   = "walk"
)

// UserProfile carries the preference fields the recommendation ranker
// filters and personalizes against.
type UserProfile struct {
	DietPreference      string `json:"diet_preference"`
	TransportPreference string `json:"transport_preference"`
	HouseholdSize       int    `json:"household_size"`
}

func (p UserProfile) Validate() error {
	switch p.DietPreference {
	case DietOmnivore, DietPescatarian, DietVegetarian, DietVegan:
	default:
		return ErrInvalidDietPreference
	}

	switch p.TransportPreference {
	case TransportPrefCar, TransportPrefPublic, TransportPrefBike, TransportPrefWalk:
	default:
		return ErrInvalidTransportPreference
	}

	if p.HouseholdSize < 1 {
		return ErrInvalidHouseholdSize
	}

	return nil
}

// DefaultProfile is assigned at registration until the user updates it.
func DefaultProfile() UserProfile {
	return UserProfile{
		DietPreference:      DietOmnivore,
		TransportPreference: TransportPrefCar,
		HouseholdSize:       1,
	}
}

// HighImpactProfile is a rolling view over a user's recent activity history:
// per-category daily averages and the categories whose average exceeds a
// fixed threshold. It is recomputed on demand and never persisted as
// authoritative state.
type HighImpactProfile struct {
	DaysObserved          int        `json:"days_observed"`
	AvgDailyDistanceKM    float64    `json:"avg_daily_distance_km"`
	AvgDailyEnergyKWH     float64    `json:"avg_daily_energy_kwh"`
	MeatMealRatio         float64    `json:"meat_meal_ratio"`
	AvgDailyShoppingItems float64    `json:"avg_daily_shopping_items"`
	HighImpactCategories  []Category `json:"high_impact_categories"`
}

// IsHighImpact reports whether the category was flagged for this window.
func (p HighImpactProfile) IsHighImpact(c Category) bool {
	for _, flagged := range p.HighImpactCategories {
		if flagged == c {
			return true
		}
	}
	return false
}
