package pet

import (
	"math/rand"
	"time"
)

// Testable randomness, swapped out by deterministic sources in tests.
var (
	RandFloat64 = rand.Float64
	RandIntn    = rand.Intn
)

func clampVital(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVital {
		return MaxVital
	}
	return v
}

func floorAt(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}

// ApplyEventEffects applies an event's one-time deltas, flooring each vital
// at 0 without the ceiling clamp (event effects are always negative).
func (p *Pet) ApplyEventEffects(e Effects) {
	p.Vitals.Hunger = floorAt(p.Vitals.Hunger+e.Hunger, 0)
	p.Vitals.Happiness = floorAt(p.Vitals.Happiness+e.Happiness, 0)
	p.Vitals.Cleanliness = floorAt(p.Vitals.Cleanliness+e.Cleanliness, 0)
	p.Vitals.Energy = floorAt(p.Vitals.Energy+e.Energy, 0)
	p.Vitals.Thirst = floorAt(p.Vitals.Thirst+e.Thirst, 0)
}

// ApplyEffects applies an activity's deltas with full [0, 100] clamping.
func (p *Pet) ApplyEffects(e Effects) {
	if e.Hunger != 0 {
		p.Vitals.Hunger = clampVital(p.Vitals.Hunger + e.Hunger)
	}
	if e.Happiness != 0 {
		p.Vitals.Happiness = clampVital(p.Vitals.Happiness + e.Happiness)
	}
	if e.Cleanliness != 0 {
		p.Vitals.Cleanliness = clampVital(p.Vitals.Cleanliness + e.Cleanliness)
	}
	if e.Energy != 0 {
		p.Vitals.Energy = clampVital(p.Vitals.Energy + e.Energy)
	}
	if e.Thirst != 0 {
		p.Vitals.Thirst = clampVital(p.Vitals.Thirst + e.Thirst)
	}
}

// HasZeroVital reports whether any vital has bottomed out, which triggers
// the runaway deletion rule.
func (p Pet) HasZeroVital() bool {
	v := p.Vitals
	return v.Hunger == 0 || v.Happiness == 0 || v.Cleanliness == 0 ||
		v.Energy == 0 || v.Thirst == 0
}

func (p Pet) HasActiveEvent() bool {
	return p.CurrentEvent != ""
}

// ActionLocked reports whether care actions are blocked: overfed pets
// refuse everything until the lock expires on its own.
func (p Pet) ActionLocked() bool {
	return p.CurrentEvent == EventOverfed
}

func (p *Pet) ClearEvent() {
	p.CurrentEvent = ""
	p.EventStartedAt = time.Time{}
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ToyPlaysToday returns the daily toy-use counter, resetting it to 0 the
// first time the calendar date rolls over.
func (p Pet) ToyPlaysToday(now time.Time) int {
	if p.LastToyPlayed.IsZero() || !sameCalendarDay(now, p.LastToyPlayed) {
		return 0
	}
	return p.ToyPlayCount
}

// NewPet seeds a freshly adopted pet: all vitals at 80, level 1, no XP or
// coins, all interaction timers set to the adoption moment.
func NewPet(id, ownerID, name string, species Species, breed, nickname string, now time.Time) Pet {
	return Pet{
		ID:            id,
		OwnerID:       ownerID,
		OwnerNickname: nickname,
		Name:          name,
		Species:       species,
		Breed:         breed,
		Vitals: Vitals{
			Hunger:      SeedVital,
			Happiness:   SeedVital,
			Cleanliness: SeedVital,
			Energy:      SeedVital,
			Thirst:      SeedVital,
		},
		Level:             1,
		LastFed:           now,
		LastPlayed:        now,
		LastCleaned:       now,
		LastMutationCheck: now,
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
