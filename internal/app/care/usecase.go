package care

import (
	"context"
	"errors"
	"fmt"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var (
	ErrInvalidAction = errors.New("unknown care action")
	ErrNotOwner      = errors.New("pet belongs to another user")
	ErrPetSleeping   = errors.New("pet is sleeping")
	ErrPetSick       = errors.New("pet is recovering from overeating")
	ErrNoToyEquipped = errors.New("no toy equipped")
	ErrToyWornOut    = errors.New("toy play limit reached for today")
	ErrAlreadyAsleep = errors.New("pet is already sleeping")
)

type Request struct {
	OwnerID string
	PetID   string
	Action  pet.CareAction
}

type Response struct {
	Pet          *pet.Pet      `json:"pet,omitempty"`
	XPAwarded    int           `json:"xp_awarded"`
	LeveledUp    bool          `json:"leveled_up"`
	BonusCoins   int           `json:"bonus_coins,omitempty"`
	EventCleared pet.EventType `json:"event_cleared,omitempty"`
	Overfed      bool          `json:"overfed,omitempty"`
	RanAway      bool          `json:"ran_away,omitempty"`
	FellAsleep   bool          `json:"fell_asleep,omitempty"`
	ToyPlaysLeft int           `json:"toy_plays_left,omitempty"`
}

// UseCase handles the five basic care actions. Each action loads the pet,
// applies its boosts and XP, clears any event the action remedies, and
// persists with a version check so a concurrent engine tick can't be
// silently overwritten.
type UseCase struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Notices     ports.NoticeRepository
	Metrics     ports.EngineMetrics
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	now := u.Now().UTC()

	p, err := u.Pets.GetByID(ctx, req.PetID)
	if err != nil {
		return Response{}, err
	}
	if p.OwnerID != req.OwnerID {
		return Response{}, ErrNotOwner
	}
	if p.ActionLocked() {
		return Response{}, ErrPetSick
	}

	switch req.Action {
	case pet.ActionFeed, pet.ActionPlay, pet.ActionClean, pet.ActionWater:
		if p.Sleeping {
			return Response{}, ErrPetSleeping
		}
	case pet.ActionToy:
		// Regular toys are allowed on a sleeping pet; only the sleep
		// mask path cares.
	default:
		return Response{}, ErrInvalidAction
	}

	expected := p.Version

	switch req.Action {
	case pet.ActionFeed:
		if p.Vitals.Hunger >= pet.MaxVital {
			return u.markOverfed(ctx, p, expected, now)
		}
		p.ApplyEffects(pet.Effects{Hunger: pet.FeedHungerBoost, Energy: pet.FeedEnergyBoost})
		p.LastFed = now
	case pet.ActionPlay:
		p.ApplyEffects(pet.Effects{Happiness: pet.PlayHappinessBoost, Energy: -pet.PlayEnergyCost})
		if p.HasZeroVital() {
			return u.runAway(ctx, p, now)
		}
		p.LastPlayed = now
	case pet.ActionClean:
		p.ApplyEffects(pet.Effects{Cleanliness: pet.CleanBoost})
		p.LastCleaned = now
	case pet.ActionWater:
		// Watering raises the thirst meter but does not reset LastFed,
		// which thirst decay is keyed off.
		p.ApplyEffects(pet.Effects{Thirst: pet.WaterThirstBoost})
	case pet.ActionToy:
		return u.playWithToy(ctx, p, expected, now)
	}

	resp := Response{}
	if pet.ClearsEvent(req.Action, p.CurrentEvent) {
		resp.EventCleared = p.CurrentEvent
		p.ClearEvent()
	}

	award := pet.CareXPReward(req.Action, p.Level)
	res := pet.GrantXP(p, award)
	p.XP, p.Level, p.Coins = res.XP, res.Level, res.Coins
	p.UpdatedAt = now
	p.Version = expected + 1

	if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
		if errors.Is(err, ports.ErrConflict) && u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
		return Response{}, err
	}

	if res.LeveledUp {
		u.appendNotice(ctx, pet.Notice{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeLevelUp,
			Message:    fmt.Sprintf("%s leveled up to %d! +%d coins", p.Name, p.Level, res.BonusCoins),
			OccurredAt: now,
		})
	}
	if resp.EventCleared != "" {
		u.appendNotice(ctx, pet.Notice{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeRecovered,
			Message:    fmt.Sprintf("%s is feeling much better!", p.Name),
			OccurredAt: now,
		})
	}
	u.recordSuccess(req.Action)

	resp.Pet = &p
	resp.XPAwarded = award
	resp.LeveledUp = res.LeveledUp
	resp.BonusCoins = res.BonusCoins
	return resp, nil
}

// markOverfed flips a full pet into the overfed lock instead of feeding it.
func (u UseCase) markOverfed(ctx context.Context, p pet.Pet, expected int64, now time.Time) (Response, error) {
	p.CurrentEvent = pet.EventOverfed
	p.EventStartedAt = now
	p.UpdatedAt = now
	p.Version = expected + 1
	if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
		return Response{}, err
	}
	u.recordSuccess(pet.ActionFeed)
	return Response{Pet: &p, Overfed: true}, nil
}

func (u UseCase) playWithToy(ctx context.Context, p pet.Pet, expected int64, now time.Time) (Response, error) {
	if p.Accessories.Toy == "" {
		return Response{}, ErrNoToyEquipped
	}

	if p.Accessories.Toy == pet.SleepMaskToy {
		if p.Sleeping {
			return Response{}, ErrAlreadyAsleep
		}
		p.Sleeping = true
		p.SleepStartedAt = now
		p.SleepEndsAt = now.Add(pet.SleepDuration)
		p.UpdatedAt = now
		p.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
			return Response{}, err
		}
		u.recordSuccess(pet.ActionToy)
		return Response{Pet: &p, FellAsleep: true}, nil
	}

	plays := p.ToyPlaysToday(now)
	if plays >= pet.ToyDailyLimit {
		return Response{}, ErrToyWornOut
	}

	p.ApplyEffects(pet.Effects{Happiness: pet.ToyHappinessBoost})
	if p.HasZeroVital() {
		return u.runAway(ctx, p, now)
	}

	award := pet.CareXPReward(pet.ActionToy, p.Level)
	res := pet.GrantXP(p, award)
	p.XP, p.Level, p.Coins = res.XP, res.Level, res.Coins
	p.ToyPlayCount = plays + 1
	p.LastToyPlayed = now
	p.UpdatedAt = now
	p.Version = expected + 1

	if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
		if errors.Is(err, ports.ErrConflict) && u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
		return Response{}, err
	}

	if res.LeveledUp {
		u.appendNotice(ctx, pet.Notice{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeLevelUp,
			Message:    fmt.Sprintf("%s leveled up to %d! +%d coins", p.Name, p.Level, res.BonusCoins),
			OccurredAt: now,
		})
	}
	u.recordSuccess(pet.ActionToy)

	return Response{
		Pet:          &p,
		XPAwarded:    award,
		LeveledUp:    res.LeveledUp,
		BonusCoins:   res.BonusCoins,
		ToyPlaysLeft: pet.ToyDailyLimit - p.ToyPlayCount,
	}, nil
}

// runAway deletes a pet whose action pushed a vital to zero. The pet record
// and its activation row go together; the owner gets a notice.
func (u UseCase) runAway(ctx context.Context, p pet.Pet, now time.Time) (Response, error) {
	if err := u.Pets.Delete(ctx, p.ID); err != nil {
		return Response{}, err
	}
	if u.Activations != nil {
		if err := u.Activations.Delete(ctx, p.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return Response{}, err
		}
	}
	u.appendNotice(ctx, pet.Notice{
		OwnerID:    p.OwnerID,
		PetID:      p.ID,
		Kind:       pet.NoticeRanAway,
		Message:    fmt.Sprintf("%s ran away because their needs weren't met...", p.Name),
		OccurredAt: now,
	})
	return Response{RanAway: true}, nil
}

func (u UseCase) appendNotice(ctx context.Context, n pet.Notice) {
	if u.Notices == nil {
		return
	}
	_ = u.Notices.Append(ctx, []pet.Notice{n})
}

func (u UseCase) recordSuccess(action pet.CareAction) {
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("care:" + string(action))
	}
}
