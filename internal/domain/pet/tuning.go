package pet

import "time"

const (
	MaxVital  = 100
	SeedVital = 80

	// Linear decay: one point lost per N minutes since the matching
	// last-interaction timestamp. Thirst is keyed off LastFed.
	HungerDecayMinutes      = 2.0
	HappinessDecayMinutes   = 3.0
	CleanlinessDecayMinutes = 4.0
	ThirstDecayMinutes      = 1.5

	SleepDuration        = 10 * time.Minute
	SleepEnergyPerMinute = 3

	// Overfed acts as a pure action lock; it expires on its own.
	OverfedRecovery = 5 * time.Minute

	FeedHungerBoost    = 25
	FeedEnergyBoost    = 10
	PlayHappinessBoost = 25
	PlayEnergyCost     = 15
	CleanBoost         = 30
	WaterThirstBoost   = 30
	ToyHappinessBoost  = 20

	ToyDailyLimit = 5

	FeedXPPerLevel  = 10
	PlayXPPerLevel  = 15
	CleanXPPerLevel = 12
	WaterXPPerLevel = 8
	ToyXPPerLevel   = 12

	BaseXPRequirement    = 100
	XPGrowthFactor       = 1.5
	LevelUpCoinsPerLevel = 20

	MutationCheckInterval = 20 * time.Minute
	MutationChance        = 0.4

	DragonBonusXP      = 50
	DragonLevelDivisor = 100

	EventChance = 0.3

	AdoptionCostPerLevel = 100

	CrownHat     = "👑"
	SleepMaskToy = "😴"
)

// ChestRarityWeights drives the weighted gacha draw over the loot table.
// Order matters for the cumulative roll.
var ChestRarityWeights = []struct {
	Rarity string
	Weight float64
}{
	{"common", 45},
	{"uncommon", 30},
	{"rare", 15},
	{"hyper rare", 6},
	{"legendary", 3},
	{"mythical", 1},
	{"impossible", 0.1},
}
