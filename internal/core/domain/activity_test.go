package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewActivityRecord(t *testing.T) {
	t.Parallel()

	date := time.Date(2026, 3, 10, 17, 42, 11, 0, time.FixedZone("CET", 3600))
	rec := NewActivityRecord("user-1", date)

	if rec.ID == "" {
		t.Error("Expected a generated ID")
	}
	if rec.Version != 1 {
		t.Errorf("Expected version 1, got %d", rec.Version)
	}
	if rec.Date.Hour() != 0 || rec.Date.Location() != time.UTC {
		t.Errorf("Expected date truncated to UTC midnight, got %v", rec.Date)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestActivityRecordValidate(t *testing.T) {
	t.Parallel()

	valid := func() *ActivityRecord {
		rec := NewActivityRecord("user-1", time.Now())
		rec.Transport.Trips = []Trip{{Mode: "car", DistanceKM: 12}}
		rec.Energy.ElectricityKWH = 5
		rec.Food.Items = map[string]float64{"chicken": 0.3}
		rec.Waste.RecyclingKG = 1
		return rec
	}

	t.Run("Valid record passes", func(t *testing.T) {
		t.Parallel()
		if err := valid().Validate(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("Empty record is valid", func(t *testing.T) {
		t.Parallel()
		rec := NewActivityRecord("user-1", time.Now())
		if err := rec.Validate(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	cases := []struct {
		name    string
		mutate  func(rec *ActivityRecord)
		wantErr error
	}{
		{"blank user id", func(r *ActivityRecord) { r.UserID = "   " }, ErrActivityInvalidUserID},
		{"zero date", func(r *ActivityRecord) { r.Date = time.Time{} }, ErrActivityInvalidDate},
		{"negative trip distance", func(r *ActivityRecord) { r.Transport.Trips[0].DistanceKM = -1 }, ErrNegativeQuantity},
		{"negative trip count", func(r *ActivityRecord) { r.Transport.Trips[0].TripCount = -2 }, ErrNegativeTripCount},
		{"negative legacy distance", func(r *ActivityRecord) { r.Transport.DistanceKM = -5 }, ErrNegativeQuantity},
		{"negative electricity", func(r *ActivityRecord) { r.Energy.ElectricityKWH = -0.1 }, ErrNegativeQuantity},
		{"negative gas", func(r *ActivityRecord) { r.Energy.NaturalGasM3 = -1 }, ErrNegativeQuantity},
		{"negative food item", func(r *ActivityRecord) { r.Food.Items["beef"] = -0.2 }, ErrNegativeQuantity},
		{"negative meat meals", func(r *ActivityRecord) { r.Food.MeatMealCount = -1 }, ErrNegativeQuantity},
		{"negative shopping item", func(r *ActivityRecord) { r.Shopping.Items = map[string]int{"books": -1} }, ErrNegativeQuantity},
		{"negative item total", func(r *ActivityRecord) { r.Shopping.TotalItemCount = -3 }, ErrNegativeQuantity},
		{"negative landfill", func(r *ActivityRecord) { r.Waste.LandfillKG = -1 }, ErrNegativeQuantity},
		{"negative water", func(r *ActivityRecord) { r.Water.UsageLiters = -10 }, ErrNegativeQuantity},
	}

	for _, tc := range cases {
		tc := tc
		t.Run("Rejects "+tc.name, func(t *testing.T) {
			t.Parallel()
			rec := valid()
			tc.mutate(rec)

			err := rec.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
