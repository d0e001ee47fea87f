package pet

import "math"

// XPRequired is the exponential leveling curve:
// floor(100 * 1.5^(level-1)).
func XPRequired(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXPRequirement * math.Pow(XPGrowthFactor, float64(level-1))))
}

type XPResult struct {
	XP         int
	Level      int
	Coins      int
	LeveledUp  bool
	BonusCoins int
}

// GrantXP funnels an action reward into XP, level, and coins. At most one
// level is gained per award no matter how large the amount; the surplus XP
// carries over against the old requirement only. On level-up the coin
// payout is the award plus newLevel*LevelUpCoinsPerLevel.
func GrantXP(p Pet, amount int) XPResult {
	newXP := p.XP + amount
	required := XPRequired(p.Level)
	if newXP >= required {
		newLevel := p.Level + 1
		bonus := newLevel * LevelUpCoinsPerLevel
		return XPResult{
			XP:         newXP - required,
			Level:      newLevel,
			Coins:      p.Coins + amount + bonus,
			LeveledUp:  true,
			BonusCoins: bonus,
		}
	}
	return XPResult{
		XP:    newXP,
		Level: p.Level,
		Coins: p.Coins + amount,
	}
}

// DragonBonusLevel is the flat-curve level used only by the dragon passive
// buff: floor(xp/100)+1. It intentionally diverges from XPRequired's
// exponential curve and can jump several levels in one application.
func DragonBonusLevel(xp int) int {
	return xp/DragonLevelDivisor + 1
}

// careXPPerLevel maps each care action to its per-level XP reward.
var careXPPerLevel = map[CareAction]int{
	ActionFeed:  FeedXPPerLevel,
	ActionPlay:  PlayXPPerLevel,
	ActionClean: CleanXPPerLevel,
	ActionWater: WaterXPPerLevel,
	ActionToy:   ToyXPPerLevel,
}

// CareXPReward returns the XP awarded for a care action on a pet of the
// given level.
func CareXPReward(action CareAction, level int) int {
	return careXPPerLevel[action] * level
}
