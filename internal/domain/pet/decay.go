package pet

import "time"

// DecayChange describes what a decay settlement decided for one pet.
type DecayChange int

const (
	// DecayNone: nothing to persist this tick.
	DecayNone DecayChange = iota
	// DecaySleepRegen: sleeping pet gained energy, write back.
	DecaySleepRegen
	// DecayWoke: sleep window elapsed, pet woke at full energy.
	DecayWoke
	// DecayEventCleared: the overfed lock expired on its own.
	DecayEventCleared
	// DecayVitalsUpdated: normal decay produced new vitals, write back.
	DecayVitalsUpdated
	// DecayRanAway: a vital bottomed out, delete the pet record.
	DecayRanAway
)

type DecayOutcome struct {
	Pet    Pet
	Change DecayChange
}

// SettleDecay recomputes a pet's vitals from elapsed time. Pure: callers
// persist (or delete) according to the outcome. Sleep and the overfed lock
// short-circuit normal decay; the runaway rule takes priority over any
// write-back of decayed values.
func SettleDecay(p Pet, now time.Time) DecayOutcome {
	next := p
	next.UpdatedAt = now

	if p.Sleeping && !p.SleepEndsAt.IsZero() {
		if !now.Before(p.SleepEndsAt) {
			next.Sleeping = false
			next.SleepStartedAt = time.Time{}
			next.SleepEndsAt = time.Time{}
			next.Vitals.Energy = MaxVital
			return DecayOutcome{Pet: next, Change: DecayWoke}
		}
		// Floor after multiplying so fractional minutes still count.
		minutesSlept := now.Sub(p.SleepStartedAt).Minutes()
		regained := int(minutesSlept * SleepEnergyPerMinute)
		newEnergy := clampVital(p.Vitals.Energy + regained)
		if newEnergy == p.Vitals.Energy {
			return DecayOutcome{Pet: p, Change: DecayNone}
		}
		next.Vitals.Energy = newEnergy
		return DecayOutcome{Pet: next, Change: DecaySleepRegen}
	}

	if p.CurrentEvent == EventOverfed && !p.EventStartedAt.IsZero() {
		if now.Sub(p.EventStartedAt) >= OverfedRecovery {
			next.ClearEvent()
			return DecayOutcome{Pet: next, Change: DecayEventCleared}
		}
	}

	minutesSinceFed := now.Sub(p.LastFed).Minutes()
	minutesSincePlayed := now.Sub(p.LastPlayed).Minutes()
	minutesSinceCleaned := now.Sub(p.LastCleaned).Minutes()

	next.Vitals.Hunger = floorAt(p.Vitals.Hunger-int(minutesSinceFed/HungerDecayMinutes), 0)
	next.Vitals.Happiness = floorAt(p.Vitals.Happiness-int(minutesSincePlayed/HappinessDecayMinutes), 0)
	next.Vitals.Cleanliness = floorAt(p.Vitals.Cleanliness-int(minutesSinceCleaned/CleanlinessDecayMinutes), 0)
	next.Vitals.Thirst = floorAt(p.Vitals.Thirst-int(minutesSinceFed/ThirstDecayMinutes), 0)

	if next.HasZeroVital() {
		return DecayOutcome{Pet: next, Change: DecayRanAway}
	}
	if next.Vitals == p.Vitals {
		return DecayOutcome{Pet: p, Change: DecayNone}
	}
	return DecayOutcome{Pet: next, Change: DecayVitalsUpdated}
}

// RollEvent decides whether an idle pet is struck by a random affliction
// this tick. Pets with an active event are never re-afflicted.
func RollEvent(p Pet, now time.Time) (Pet, Event, bool) {
	if p.HasActiveEvent() {
		return p, Event{}, false
	}
	if RandFloat64() >= EventChance {
		return p, Event{}, false
	}
	evt := EventCatalog[eventOrder[RandIntn(len(eventOrder))]]
	next := p
	next.CurrentEvent = evt.Type
	next.EventStartedAt = now
	next.UpdatedAt = now
	next.ApplyEventEffects(evt.Effects)
	return next, evt, true
}
