package pet

import "time"

type MutationOutcome struct {
	Pet     Pet
	Checked bool
	Mutated bool
}

// CheckCrownMutation rolls the crown-hat species reroll. The check is gated
// to once per MutationCheckInterval; a failed roll still advances the gate
// so the next roll waits the full interval again.
func CheckCrownMutation(p Pet, now time.Time) MutationOutcome {
	if p.Accessories.Hat != CrownHat {
		return MutationOutcome{Pet: p}
	}
	if now.Sub(p.LastMutationCheck) < MutationCheckInterval {
		return MutationOutcome{Pet: p}
	}

	next := p
	next.LastMutationCheck = now
	next.UpdatedAt = now
	if RandFloat64() < MutationChance {
		next.Species = MutationSpecies[RandIntn(len(MutationSpecies))]
		return MutationOutcome{Pet: next, Checked: true, Mutated: true}
	}
	return MutationOutcome{Pet: next, Checked: true}
}

// ApplyDragonBonus grants the passive dragon XP to a non-dragon pet and
// recomputes its level on the flat bonus curve.
func ApplyDragonBonus(p Pet, now time.Time) Pet {
	next := p
	next.XP = p.XP + DragonBonusXP
	next.Level = DragonBonusLevel(next.XP)
	next.UpdatedAt = now
	return next
}
