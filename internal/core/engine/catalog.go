package engine

import "github.com/climatecoach/carbon-engine/internal/core/domain"

// Catalog is the ordered collection of recommendation templates, indexed by
// category and tier. Insertion order is preserved end to end: it is the tie
// breaker for equal ranking scores, so catalog order is part of the
// contract, not an accident.
type Catalog struct {
	templates  []domain.RecommendationTemplate
	byCategory map[domain.Category]map[domain.Tier][]domain.RecommendationTemplate
	categories []domain.Category
}

func NewCatalog(templates []domain.RecommendationTemplate) *Catalog {
	c := &Catalog{
		templates:  templates,
		byCategory: make(map[domain.Category]map[domain.Tier][]domain.RecommendationTemplate),
	}

	for _, t := range templates {
		tiers, ok := c.byCategory[t.Category]
		if !ok {
			tiers = make(map[domain.Tier][]domain.RecommendationTemplate)
			c.byCategory[t.Category] = tiers
			c.categories = append(c.categories, t.Category)
		}
		tiers[t.Tier] = append(tiers[t.Tier], t)
	}

	return c
}

// ByTier returns the templates of one category and tier in insertion order.
func (c *Catalog) ByTier(category domain.Category, tier domain.Tier) []domain.RecommendationTemplate {
	tiers, ok := c.byCategory[category]
	if !ok {
		return nil
	}
	return tiers[tier]
}

// Categories lists the categories in first-insertion order.
func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

// DefaultCatalog builds the shipped recommendation database. Savings values
// are per-unit baselines (per km, per kWh, per meal, per item) that the
// ranker scales against the user's own averages.
func DefaultCatalog() *Catalog {
	return NewCatalog([]domain.RecommendationTemplate{
		// Transport
		{
			Category:    domain.CategoryTransport,
			Tier:        domain.TierHigh,
			Title:       "Switch to Public Transport",
			Description: "Replace car trips with bus or train. Saves 0.15 kg CO2 per km.",
			ActionSteps: []string{
				"Download transit apps for your area",
				"Buy a monthly pass",
				"Plan journey times in advance",
			},
			BaseSavingsKG: 0.15,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyToday,
			Tags:          []string{"public_transport", "daily_commute"},
		},
		{
			Category:    domain.CategoryTransport,
			Tier:        domain.TierHigh,
			Title:       "Start Carpooling",
			Description: "Share rides with colleagues or neighbors. Reduces emissions by 50% per trip.",
			ActionSteps: []string{
				"Ask colleagues who live nearby",
				"Agree a weekly pickup schedule",
			},
			BaseSavingsKG: 0.1,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"carpooling", "social", domain.TagCarDependent},
		},
		{
			Category:    domain.CategoryTransport,
			Tier:        domain.TierHigh,
			Title:       "Switch to Electric Vehicle",
			Description: "Consider an electric vehicle for your next car purchase. 70% lower emissions.",
			ActionSteps: []string{
				"Compare EV models in your budget",
				"Check charging options at home and work",
			},
			BaseSavingsKG: 0.14,
			Difficulty:    domain.DifficultyHard,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"ev", "investment", domain.TagCarDependent},
		},
		{
			Category:    domain.CategoryTransport,
			Tier:        domain.TierMedium,
			Title:       "Optimize Your Route",
			Description: "Use GPS to find the most efficient route and avoid traffic.",
			ActionSteps: []string{
				"Plan trips during off-peak hours",
				"Combine errands into a single trip",
			},
			BaseSavingsKG: 0.02,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"efficiency", "technology"},
		},
		{
			Category:    domain.CategoryTransport,
			Tier:        domain.TierMedium,
			Title:       "Maintain Your Vehicle",
			Description: "Regular maintenance improves fuel efficiency by 10-15%.",
			ActionSteps: []string{
				"Check tire pressure monthly",
				"Keep up with the service schedule",
			},
			BaseSavingsKG: 0.03,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"maintenance", "efficiency", domain.TagCarDependent},
		},

		// Energy
		{
			Category:    domain.CategoryEnergy,
			Tier:        domain.TierHigh,
			Title:       "Switch to LED Bulbs",
			Description: "Replace all light bulbs with LED equivalents. 75% less energy usage.",
			ActionSteps: []string{
				"Audit the bulbs you have",
				"Replace the most-used rooms first",
			},
			BaseSavingsKG: 0.1,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyToday,
			Tags:          []string{"lighting", "home"},
		},
		{
			Category:    domain.CategoryEnergy,
			Tier:        domain.TierHigh,
			Title:       "Install Smart Thermostat",
			Description: "Automate heating/cooling to optimize energy usage.",
			ActionSteps: []string{
				"Research compatible models",
				"Install or hire a professional",
				"Set optimal schedules",
			},
			BaseSavingsKG: 0.15,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"smart_home", "automation"},
		},
		{
			Category:    domain.CategoryEnergy,
			Tier:        domain.TierHigh,
			Title:       "Switch to Renewable Energy",
			Description: "Consider solar panels or a green energy provider.",
			ActionSteps: []string{
				"Compare green tariffs from local providers",
				"Get a solar quote for your roof",
			},
			BaseSavingsKG: 0.5,
			Difficulty:    domain.DifficultyHard,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"renewable", "investment"},
		},
		{
			Category:    domain.CategoryEnergy,
			Tier:        domain.TierMedium,
			Title:       "Unplug Electronics",
			Description: "Unplug devices when not in use to prevent phantom energy usage.",
			ActionSteps: []string{
				"Use power strips with switches",
				"Unplug chargers overnight",
			},
			BaseSavingsKG: 0.02,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"habits", "home"},
		},
		{
			Category:    domain.CategoryEnergy,
			Tier:        domain.TierMedium,
			Title:       "Use Natural Light",
			Description: "Open curtains and use natural light instead of artificial lighting.",
			ActionSteps: []string{
				"Rearrange your workspace toward windows",
			},
			BaseSavingsKG: 0.03,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"natural", "free"},
		},

		// Food
		{
			Category:    domain.CategoryFood,
			Tier:        domain.TierHigh,
			Title:       "Reduce Meat Consumption",
			Description: "Try Meatless Mondays or reduce meat portions. 2.5 kg CO2 saved per meal.",
			ActionSteps: []string{
				"Pick one meat-free day per week",
				"Explore plant-based recipes",
			},
			BaseSavingsKG: 2.5,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"diet", "health", domain.TagMeatReduction},
		},
		{
			Category:    domain.CategoryFood,
			Tier:        domain.TierHigh,
			Title:       "Buy Local Produce",
			Description: "Choose locally grown food to reduce transportation emissions.",
			ActionSteps: []string{
				"Find local farmers markets",
				"Check grocery store origin labels",
			},
			BaseSavingsKG: 0.5,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"local", "seasonal"},
		},
		{
			Category:    domain.CategoryFood,
			Tier:        domain.TierHigh,
			Title:       "Reduce Food Waste",
			Description: "Plan meals and use leftovers. 30% of food is wasted globally.",
			ActionSteps: []string{
				"Plan a weekly menu before shopping",
				"Store leftovers in clear containers",
			},
			BaseSavingsKG: 1.0,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyToday,
			Tags:          []string{"waste", "planning"},
		},
		{
			Category:    domain.CategoryFood,
			Tier:        domain.TierMedium,
			Title:       "Grow Your Own Herbs",
			Description: "Start with easy-to-grow herbs like basil and mint.",
			ActionSteps: []string{
				"Start a windowsill pot with basil",
			},
			BaseSavingsKG: 0.1,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"gardening", "hobby"},
		},
		{
			Category:    domain.CategoryFood,
			Tier:        domain.TierMedium,
			Title:       "Use Reusable Containers",
			Description: "Bring your own containers for takeout and leftovers.",
			ActionSteps: []string{
				"Keep a container in your bag",
			},
			BaseSavingsKG: 0.05,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"reusable", "plastic_free"},
		},

		// Shopping
		{
			Category:    domain.CategoryShopping,
			Tier:        domain.TierHigh,
			Title:       "Buy Second-Hand",
			Description: "Choose used items over new ones. Reduces manufacturing emissions.",
			ActionSteps: []string{
				"Check thrift stores and resale apps first",
			},
			BaseSavingsKG: 0.5,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"reuse", "thrift"},
		},
		{
			Category:    domain.CategoryShopping,
			Tier:        domain.TierHigh,
			Title:       "Choose Sustainable Brands",
			Description: "Support companies with eco-friendly practices.",
			ActionSteps: []string{
				"Look up brand sustainability ratings",
			},
			BaseSavingsKG: 0.3,
			Difficulty:    domain.DifficultyMedium,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"sustainable", "ethical"},
		},
		{
			Category:    domain.CategoryShopping,
			Tier:        domain.TierHigh,
			Title:       "Reduce Online Shopping",
			Description: "Combine orders and choose slower shipping options.",
			ActionSteps: []string{
				"Batch purchases into one weekly order",
				"Pick the no-rush shipping option",
			},
			BaseSavingsKG: 0.2,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyToday,
			Tags:          []string{"delivery", "consolidation"},
		},
		{
			Category:    domain.CategoryShopping,
			Tier:        domain.TierMedium,
			Title:       "Use Reusable Bags",
			Description: "Bring your own shopping bags to avoid plastic.",
			ActionSteps: []string{
				"Keep bags by the door and in the car",
			},
			BaseSavingsKG: 0.01,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"plastic_free", "habits"},
		},
		{
			Category:    domain.CategoryShopping,
			Tier:        domain.TierMedium,
			Title:       "Buy in Bulk",
			Description: "Purchase larger quantities to reduce packaging waste.",
			ActionSteps: []string{
				"Switch staples like rice and oats to bulk sizes",
			},
			BaseSavingsKG: 0.05,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyThisMonth,
			Tags:          []string{"bulk", "packaging"},
		},

		// Waste
		{
			Category:    domain.CategoryWaste,
			Tier:        domain.TierMedium,
			Title:       "Compost Food Scraps",
			Description: "Divert organic waste from landfill. Composting emits almost no CO2.",
			ActionSteps: []string{
				"Set up a small kitchen compost bin",
				"Find a local compost drop-off",
			},
			BaseSavingsKG: 0.5,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyThisWeek,
			Tags:          []string{"compost", "organic"},
		},
		{
			Category:    domain.CategoryWaste,
			Tier:        domain.TierMedium,
			Title:       "Sort Your Recycling",
			Description: "Recycled material carries a fifth of the landfill footprint per kg.",
			ActionSteps: []string{
				"Add a second bin for recyclables",
				"Learn your municipality's sorting rules",
			},
			BaseSavingsKG: 0.4,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyToday,
			Tags:          []string{"recycling", "habits"},
		},

		// Water
		{
			Category:    domain.CategoryWater,
			Tier:        domain.TierMedium,
			Title:       "Take Shorter Showers",
			Description: "Cutting two minutes off a shower saves around 20 liters of water.",
			ActionSteps: []string{
				"Set a 5-minute shower timer",
			},
			BaseSavingsKG: 0.05,
			Difficulty:    domain.DifficultyEasy,
			Urgency:       domain.UrgencyImmediate,
			Tags:          []string{"water", "habits"},
		},
	})
}
