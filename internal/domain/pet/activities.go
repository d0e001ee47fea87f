package pet

import "time"

// ActivityType is a paid, cooldown-gated outing distinct from the basic
// care actions.
type ActivityType string

const (
	ActivitySalon      ActivityType = "salon"
	ActivityPlayground ActivityType = "playground"
	ActivitySchool     ActivityType = "school"
	ActivityBakery     ActivityType = "bakery"
	ActivityDance      ActivityType = "dance"
	ActivitySports     ActivityType = "sports"
)

type Activity struct {
	Type       ActivityType
	Emoji      string
	Name       string
	Cost       int
	Cooldown   time.Duration
	XPReward   int
	CoinReward int
	Effects    Effects
}

var ActivityCatalog = map[ActivityType]Activity{
	ActivitySalon: {
		Type: ActivitySalon, Emoji: "💅", Name: "Pet Salon",
		Cost: 30, Cooldown: 5 * time.Minute, XPReward: 40, CoinReward: 10,
		Effects: Effects{Cleanliness: 50, Happiness: 20},
	},
	ActivityPlayground: {
		Type: ActivityPlayground, Emoji: "🎪", Name: "Playground",
		Cost: 0, Cooldown: 10 * time.Minute, XPReward: 50, CoinReward: 20,
		Effects: Effects{Happiness: 40, Energy: -20},
	},
	ActivitySchool: {
		Type: ActivitySchool, Emoji: "🎓", Name: "Pet School",
		Cost: 50, Cooldown: 15 * time.Minute, XPReward: 100, CoinReward: 50,
		Effects: Effects{Happiness: 15, Energy: -10},
	},
	ActivityBakery: {
		Type: ActivityBakery, Emoji: "🧁", Name: "Pet Bakery",
		Cost: 40, Cooldown: 450 * time.Second, XPReward: 35, CoinReward: 15,
		Effects: Effects{Hunger: 40, Happiness: 30, Thirst: -10},
	},
	ActivityDance: {
		Type: ActivityDance, Emoji: "💃", Name: "Dance Class",
		Cost: 35, Cooldown: 10 * time.Minute, XPReward: 60, CoinReward: 25,
		Effects: Effects{Happiness: 35, Energy: -25},
	},
	ActivitySports: {
		Type: ActivitySports, Emoji: "⚽", Name: "Sports Center",
		Cost: 25, Cooldown: 450 * time.Second, XPReward: 45, CoinReward: 20,
		Effects: Effects{Happiness: 25, Energy: -30, Thirst: -20},
	},
}

func ValidActivity(t ActivityType) bool {
	_, ok := ActivityCatalog[t]
	return ok
}

// ActivityCooldownRemaining returns how long until the activity can run
// again for this pet, zero when it is off cooldown.
func ActivityCooldownRemaining(p Pet, t ActivityType, now time.Time) time.Duration {
	act, ok := ActivityCatalog[t]
	if !ok {
		return 0
	}
	last, ok := p.LastActivity[t]
	if !ok || last.IsZero() {
		return 0
	}
	remaining := act.Cooldown - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
