package engine

import (
	"math"
	"sort"

	"github.com/climatecoach/carbon-engine/internal/core/domain"
)

// DefaultTopN caps the ranked recommendation list.
const DefaultTopN = 5

// Scoring weights. Fixed constants, not user-tunable.
const (
	weightSavings         = 0.3
	weightPersonalization = 0.3
	weightDifficulty      = 0.2
	weightUrgency         = 0.2
)

// Suitability floors: below these daily averages a transport or energy tip
// has nothing meaningful to act on and is dropped.
const (
	minTransportKMPerDay = 5.0
	minEnergyKWHPerDay   = 5.0
)

// Adoption rates scale a template's per-unit baseline savings against the
// user's own daily averages. Categories without a rate use the baseline
// as-is.
var adoptionRates = map[domain.Category]float64{
	domain.CategoryTransport: 0.3,
	domain.CategoryEnergy:    0.2,
	domain.CategoryFood:      0.4,
	domain.CategoryShopping:  0.25,
}

// Recommender selects, filters, scores, and ranks catalog templates for one
// user. Like the calculator it is pure: no I/O, no retained state, safe for
// concurrent use.
type Recommender struct {
	catalog *Catalog
}

func NewRecommender(catalog *Catalog) *Recommender {
	return &Recommender{catalog: catalog}
}

// Recommend returns at most topN ranked recommendations and never returns an
// empty list: if every candidate is filtered out, a single default
// recommendation takes its place.
//
// Candidates are gathered per high-impact category, high tier before medium
// tier, in catalog insertion order. With no flags set, one medium-tier tip
// per catalog category serves as the general fallback set. Ranking is by
// descending score with ties kept in generation order (stable sort), so the
// output is fully deterministic.
func (r *Recommender) Recommend(footprint domain.Footprint, profile domain.HighImpactProfile, user domain.UserProfile, topN int) []domain.Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	candidates := r.gatherCandidates(profile)

	suitable := candidates[:0]
	for _, t := range candidates {
		if r.isSuitable(t, user, profile) {
			suitable = append(suitable, t)
		}
	}

	if len(suitable) == 0 {
		return []domain.Recommendation{fallbackRecommendation()}
	}

	recs := r.score(suitable, footprint, profile, user)

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}

func (r *Recommender) gatherCandidates(profile domain.HighImpactProfile) []domain.RecommendationTemplate {
	var candidates []domain.RecommendationTemplate

	if len(profile.HighImpactCategories) > 0 {
		for _, category := range profile.HighImpactCategories {
			candidates = append(candidates, r.catalog.ByTier(category, domain.TierHigh)...)
			candidates = append(candidates, r.catalog.ByTier(category, domain.TierMedium)...)
		}
		return candidates
	}

	// No flagged categories: one general tip per domain.
	for _, category := range r.catalog.Categories() {
		if medium := r.catalog.ByTier(category, domain.TierMedium); len(medium) > 0 {
			candidates = append(candidates, medium[0])
		}
	}
	return candidates
}

func (r *Recommender) isSuitable(t domain.RecommendationTemplate, user domain.UserProfile, profile domain.HighImpactProfile) bool {
	if user.DietPreference == domain.DietVegan && t.HasTag(domain.TagMeatReduction) {
		return false
	}

	carFree := user.TransportPreference == domain.TransportPrefBike ||
		user.TransportPreference == domain.TransportPrefWalk
	if carFree && t.HasTag(domain.TagCarDependent) {
		return false
	}

	if t.Category == domain.CategoryTransport && profile.AvgDailyDistanceKM < minTransportKMPerDay {
		return false
	}
	if t.Category == domain.CategoryEnergy && profile.AvgDailyEnergyKWH < minEnergyKWHPerDay {
		return false
	}

	return true
}

func (r *Recommender) score(templates []domain.RecommendationTemplate, footprint domain.Footprint, profile domain.HighImpactProfile, user domain.UserProfile) []domain.Recommendation {
	savings := make([]float64, len(templates))
	maxSavings := 0.0
	for i, t := range templates {
		savings[i] = estimatedSavings(t, profile)
		if savings[i] > maxSavings {
			maxSavings = savings[i]
		}
	}

	recs := make([]domain.Recommendation, 0, len(templates))
	for i, t := range templates {
		savingsNorm := 0.0
		if maxSavings > 0 {
			savingsNorm = savings[i] / maxSavings
		}

		personalization := personalizationScore(t, footprint, profile, user)

		score := weightSavings*savingsNorm +
			weightPersonalization*personalization +
			weightDifficulty*difficultyWeight(t.Difficulty) +
			weightUrgency*urgencyWeight(t.Urgency)

		recs = append(recs, domain.Recommendation{
			Title:                t.Title,
			Description:          t.Description,
			Category:             t.Category,
			Impact:               impactLabel(t.Tier),
			Difficulty:           difficultyLabel(t.Difficulty),
			CO2Savings:           round2(savings[i]),
			ActionSteps:          t.ActionSteps,
			Score:                round4(score),
			PersonalizationScore: round2(personalization),
		})
	}
	return recs
}

// estimatedSavings scales the per-unit baseline by the user's own averages
// and the category adoption rate. Without history the baseline stands.
func estimatedSavings(t domain.RecommendationTemplate, profile domain.HighImpactProfile) float64 {
	switch t.Category {
	case domain.CategoryTransport:
		return t.BaseSavingsKG * profile.AvgDailyDistanceKM * adoptionRates[domain.CategoryTransport]
	case domain.CategoryEnergy:
		return t.BaseSavingsKG * profile.AvgDailyEnergyKWH * adoptionRates[domain.CategoryEnergy]
	case domain.CategoryFood:
		ratio := profile.MeatMealRatio
		if ratio == 0 {
			ratio = 0.5
		}
		return t.BaseSavingsKG * ratio * adoptionRates[domain.CategoryFood]
	case domain.CategoryShopping:
		items := profile.AvgDailyShoppingItems
		if items < 1 {
			items = 1
		}
		return t.BaseSavingsKG * items * adoptionRates[domain.CategoryShopping]
	default:
		return t.BaseSavingsKG
	}
}

// heavyDayThresholdKG marks a single-day category subtotal as heavy enough
// to nudge personalization even without a rolling high-impact flag.
const heavyDayThresholdKG = 10.0

// personalizationScore starts from a neutral 0.5 and rewards templates whose
// category the user is currently high-impact in (or ran heavy today), plus
// preference matches. Result is clamped to [0, 1].
func personalizationScore(t domain.RecommendationTemplate, footprint domain.Footprint, profile domain.HighImpactProfile, user domain.UserProfile) float64 {
	score := 0.5

	if profile.IsHighImpact(t.Category) {
		score += 0.3
	} else if footprint.Subtotal(t.Category) > heavyDayThresholdKG {
		score += 0.15
	}

	if t.Category == domain.CategoryTransport && user.TransportPreference == domain.TransportPrefPublic {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func difficultyWeight(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return 0.3
	case domain.DifficultyMedium:
		return 0.2
	default:
		return 0.1
	}
}

func urgencyWeight(u domain.Urgency) float64 {
	switch u {
	case domain.UrgencyImmediate:
		return 0.3
	case domain.UrgencyToday:
		return 0.2
	default:
		return 0.1
	}
}

func impactLabel(tier domain.Tier) string {
	if tier == domain.TierHigh {
		return "High"
	}
	return "Medium"
}

func difficultyLabel(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return "Easy"
	case domain.DifficultyMedium:
		return "Medium"
	default:
		return "Hard"
	}
}

// fallbackRecommendation is the guaranteed floor of the ranker: returned
// alone when the suitability filter empties the candidate set.
func fallbackRecommendation() domain.Recommendation {
	return domain.Recommendation{
		Title:       "Walk or Bike for Short Trips",
		Description: "Replace car trips under 3 km with walking or cycling.",
		Category:    domain.CategoryTransport,
		Impact:      "High",
		Difficulty:  "Easy",
		CO2Savings:  8.5,
		ActionSteps: []string{
			"Identify short trips you make regularly",
			"Plan walking or cycling routes",
			"Start with one trip per day",
		},
		Score:                round4(weightPersonalization*0.7 + weightDifficulty*0.3 + weightUrgency*0.2),
		PersonalizationScore: 0.7,
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
