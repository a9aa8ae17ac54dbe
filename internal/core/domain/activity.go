package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrActivityInvalidUserID = errors.New("invalid user id")
	ErrActivityInvalidDate   = errors.New("activity date is required")
	ErrNegativeQuantity      = errors.New("quantity cannot be negative")
	ErrNegativeTripCount     = errors.New("trip count cannot be negative")
)

// Category identifies one of the six behavioral domains an activity record
// is broken down into. The order of Categories is fixed and drives every
// deterministic iteration in the engine.
type Category string

const (
	CategoryTransport Category = "transport"
	CategoryEnergy    Category = "energy"
	CategoryFood      Category = "food"
	CategoryShopping  Category = "shopping"
	CategoryWaste     Category = "waste"
	CategoryWater     Category = "water"
)

var Categories = []Category{
	CategoryTransport,
	CategoryEnergy,
	CategoryFood,
	CategoryShopping,
	CategoryWaste,
	CategoryWater,
}

// Trip is a single journey within a day. TripCount below 1 is treated as a
// single trip; negative counts are rejected by Validate.
type Trip struct {
	Mode       string  `json:"mode"`
	DistanceKM float64 `json:"distance_km"`
	TripCount  int     `json:"trip_count,omitempty"`
}

// TransportActivity carries the itemized trip list and the legacy
// single-mode pair. Both may be populated at the same time; see the
// calculator for how the two schemas combine.
type TransportActivity struct {
	Trips      []Trip  `json:"trips,omitempty"`
	Mode       string  `json:"mode,omitempty"`
	DistanceKM float64 `json:"distance_km,omitempty"`
}

type EnergyActivity struct {
	ElectricityKWH   float64 `json:"electricity_kwh,omitempty"`
	NaturalGasM3     float64 `json:"natural_gas_m3,omitempty"`
	HeatingOilLiters float64 `json:"heating_oil_liters,omitempty"`
}

// FoodActivity holds itemized sub-type -> kg amounts plus the legacy
// meal counters. Both may be populated at the same time.
type FoodActivity struct {
	Items         map[string]float64 `json:"items,omitempty"`
	MeatMealCount int                `json:"meat_meal_count,omitempty"`
	VegMealCount  int                `json:"veg_meal_count,omitempty"`
}

// ShoppingActivity holds itemized sub-type -> item counts plus the legacy
// total item counter. Both may be populated at the same time.
type ShoppingActivity struct {
	Items          map[string]int `json:"items,omitempty"`
	TotalItemCount int            `json:"total_item_count,omitempty"`
}

type WasteActivity struct {
	LandfillKG   float64 `json:"landfill_kg,omitempty"`
	RecyclingKG  float64 `json:"recycling_kg,omitempty"`
	CompostingKG float64 `json:"composting_kg,omitempty"`
}

type WaterActivity struct {
	UsageLiters float64 `json:"usage_liters,omitempty"`
}

// ActivityRecord is one user's logged activity for one calendar date.
// Every category block is optional; a zero block contributes nothing.
// There is exactly one record per (user, date) pair.
type ActivityRecord struct {
	ID     string    `json:"id"`
	UserID string    `json:"user_id"`
	Date   time.Time `json:"date"`

	Transport TransportActivity `json:"transport"`
	Energy    EnergyActivity    `json:"energy"`
	Food      FoodActivity      `json:"food"`
	Shopping  ShoppingActivity  `json:"shopping"`
	Waste     WasteActivity     `json:"waste"`
	Water     WaterActivity     `json:"water"`

	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func NewActivityRecord(userID string, date time.Time) *ActivityRecord {
	now := time.Now().UTC()

	return &ActivityRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   date.UTC().Truncate(24 * time.Hour),

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate rejects structurally invalid records. Negative quantities are an
// error, never clamped; a record with every block zero is valid.
func (r *ActivityRecord) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return ErrActivityInvalidUserID
	}
	if r.Date.IsZero() {
		return ErrActivityInvalidDate
	}

	for i, trip := range r.Transport.Trips {
		if trip.DistanceKM < 0 {
			return fmt.Errorf("%w: transport.trips[%d].distance_km", ErrNegativeQuantity, i)
		}
		if trip.TripCount < 0 {
			return fmt.Errorf("%w: transport.trips[%d].trip_count", ErrNegativeTripCount, i)
		}
	}
	if r.Transport.DistanceKM < 0 {
		return fmt.Errorf("%w: transport.distance_km", ErrNegativeQuantity)
	}

	if r.Energy.ElectricityKWH < 0 {
		return fmt.Errorf("%w: energy.electricity_kwh", ErrNegativeQuantity)
	}
	if r.Energy.NaturalGasM3 < 0 {
		return fmt.Errorf("%w: energy.natural_gas_m3", ErrNegativeQuantity)
	}
	if r.Energy.HeatingOilLiters < 0 {
		return fmt.Errorf("%w: energy.heating_oil_liters", ErrNegativeQuantity)
	}

	for subType, kg := range r.Food.Items {
		if kg < 0 {
			return fmt.Errorf("%w: food.items[%s]", ErrNegativeQuantity, subType)
		}
	}
	if r.Food.MeatMealCount < 0 {
		return fmt.Errorf("%w: food.meat_meal_count", ErrNegativeQuantity)
	}
	if r.Food.VegMealCount < 0 {
		return fmt.Errorf("%w: food.veg_meal_count", ErrNegativeQuantity)
	}

	for subType, count := range r.Shopping.Items {
		if count < 0 {
			return fmt.Errorf("%w: shopping.items[%s]", ErrNegativeQuantity, subType)
		}
	}
	if r.Shopping.TotalItemCount < 0 {
		return fmt.Errorf("%w: shopping.total_item_count", ErrNegativeQuantity)
	}

	if r.Waste.LandfillKG < 0 {
		return fmt.Errorf("%w: waste.landfill_kg", ErrNegativeQuantity)
	}
	if r.Waste.RecyclingKG < 0 {
		return fmt.Errorf("%w: waste.recycling_kg", ErrNegativeQuantity)
	}
	if r.Waste.CompostingKG < 0 {
		return fmt.Errorf("%w: waste.composting_kg", ErrNegativeQuantity)
	}

	if r.Water.UsageLiters < 0 {
		return fmt.Errorf("%w: water.usage_liters", ErrNegativeQuantity)
	}

	return nil
}
