package domain

import "context"

// Trend labels for CarbonSummary.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// CarbonSummary aggregates a user's stored footprints over a window:
// totals, daily average, and a recent-vs-overall trend. Like the
// HighImpactProfile it is a derived view, safe to cache but never a
// source of truth.
type CarbonSummary struct {
	DaysTracked    int     `json:"days_tracked"`
	TotalCO2       float64 `json:"total_co2"`
	AvgDailyCO2    float64 `json:"avg_daily_co2"`
	Trend          string  `json:"trend"`
	ChangeRate     float64 `json:"change_rate_percent"`
	RecentAverage  float64 `json:"recent_average"`
	OverallAverage float64 `json:"overall_average"`
	BestDayCO2     float64 `json:"best_day_co2"`
	WorstDayCO2    float64 `json:"worst_day_co2"`
}

// SummaryCache is a warm view cache for computed summaries. A miss returns
// (nil, nil): callers always fall back to recomputing from stored footprints.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (*CarbonSummary, error)
	Set(ctx context.Context, userID string, summary *CarbonSummary) error
	Invalidate(ctx context.Context, userID string) error
}
