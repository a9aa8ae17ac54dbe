package domain

// Tier classifies a catalog template by expected impact.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyToday     Urgency = "today"
	UrgencyThisWeek  Urgency = "this_week"
	UrgencyThisMonth Urgency = "this_month"
)

// Applicability tags. The ranker drops a template whose tags conflict with
// the user's stated preferences.
const (
	TagMeatReduction = "meat_reduction"
	TagCarDependent  = "car_dependent"
)

// RecommendationTemplate is a static catalog entry, independent of any user.
// Templates are loaded once at process start and never mutated.
type RecommendationTemplate struct {
	Category      Category   `json:"category"`
	Tier          Tier       `json:"tier"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ActionSteps   []string   `json:"action_steps"`
	BaseSavingsKG float64    `json:"base_savings_kg"`
	Difficulty    Difficulty `json:"difficulty"`
	Urgency       Urgency    `json:"urgency"`
	Tags          []string   `json:"tags"`
}

func (t RecommendationTemplate) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Recommendation is a template instantiated against one user's footprint,
// pattern profile, and preferences. Created per request, never persisted.
type Recommendation struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Category             Category `json:"category"`
	Impact               string   `json:"impact"`
	Difficulty           string   `json:"difficulty"`
	CO2Savings           float64  `json:"co2_savings"`
	ActionSteps          []string `json:"action_steps"`
	Score                float64  `json:"score"`
	PersonalizationScore float64  `json:"personalization_score"`
}
