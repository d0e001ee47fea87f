package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

// UseCase is the simulation engine behind the periodic ticks. Each tick
// walks every active pet, applies one rule family, and persists with a
// version check. A conflict means a user action raced the tick; the pet is
// skipped and picked up again next tick.
type UseCase struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Notices     ports.NoticeRepository
	Metrics     ports.EngineMetrics
	Logger      *log.Logger
	Now         func() time.Time
}

func (u UseCase) logf(format string, args ...any) {
	logger := u.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}

func (u UseCase) activePets(ctx context.Context) ([]pet.Pet, error) {
	ids, err := u.Activations.ListAllActivePetIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return u.Pets.GetByIDs(ctx, ids)
}

// DecayTick settles elapsed-time decay for every active pet: sleep regen
// and wake-up, overfed expiry, vital loss, and the runaway deletion rule.
func (u UseCase) DecayTick(ctx context.Context) error {
	now := u.Now().UTC()
	pets, err := u.activePets(ctx)
	if err != nil {
		return err
	}

	for _, p := range pets {
		outcome := pet.SettleDecay(p, now)
		switch outcome.Change {
		case pet.DecayNone:
			continue
		case pet.DecayRanAway:
			if err := u.deleteRunaway(ctx, p, now); err != nil {
				u.recordStepFailure("decay", p.ID, err)
			}
			continue
		}

		next := outcome.Pet
		expected := p.Version
		next.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, next, expected); err != nil {
			u.recordStepFailure("decay", p.ID, err)
			continue
		}
		if outcome.Change == pet.DecayWoke {
			u.appendNotice(ctx, pet.Notice{
				OwnerID:    p.OwnerID,
				PetID:      p.ID,
				Kind:       pet.NoticeWokeUp,
				Message:    fmt.Sprintf("%s woke up full of energy!", p.Name),
				OccurredAt: now,
			})
		}
		if outcome.Change == pet.DecayEventCleared {
			u.appendNotice(ctx, pet.Notice{
				OwnerID:    p.OwnerID,
				PetID:      p.ID,
				Kind:       pet.NoticeRecovered,
				Message:    fmt.Sprintf("%s recovered from overeating.", p.Name),
				OccurredAt: now,
			})
		}
	}

	u.recordTick("decay")
	return nil
}

// EventTick rolls the random affliction chance for every event-free active
// pet. Event effects floor at zero and never delete a pet on their own.
func (u UseCase) EventTick(ctx context.Context) error {
	now := u.Now().UTC()
	pets, err := u.activePets(ctx)
	if err != nil {
		return err
	}

	for _, p := range pets {
		next, evt, struck := pet.RollEvent(p, now)
		if !struck {
			continue
		}
		expected := p.Version
		next.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, next, expected); err != nil {
			u.recordStepFailure("events", p.ID, err)
			continue
		}
		u.appendNotice(ctx, pet.Notice{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeEventBegan,
			Message:    fmt.Sprintf("%s is %s! %s", p.Name, evt.Title, evt.Emoji),
			OccurredAt: now,
		})
	}

	u.recordTick("events")
	return nil
}

// MutationTick runs the crown-hat species reroll for active pets.
func (u UseCase) MutationTick(ctx context.Context) error {
	now := u.Now().UTC()
	pets, err := u.activePets(ctx)
	if err != nil {
		return err
	}

	for _, p := range pets {
		outcome := pet.CheckCrownMutation(p, now)
		if !outcome.Checked {
			continue
		}
		next := outcome.Pet
		expected := p.Version
		next.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, next, expected); err != nil {
			u.recordStepFailure("mutation", p.ID, err)
			continue
		}
		if outcome.Mutated {
			u.appendNotice(ctx, pet.Notice{
				OwnerID:    p.OwnerID,
				PetID:      p.ID,
				Kind:       pet.NoticeMutated,
				Message:    fmt.Sprintf("%s magically transformed into a %s!", p.Name, next.Species),
				OccurredAt: now,
			})
		}
	}

	u.recordTick("mutation")
	return nil
}

// DragonTick grants the passive dragon buff: owners with an active dragon
// see every other active pet of theirs gain XP on the flat bonus curve.
func (u UseCase) DragonTick(ctx context.Context) error {
	now := u.Now().UTC()
	pets, err := u.activePets(ctx)
	if err != nil {
		return err
	}

	byOwner := make(map[string][]pet.Pet)
	for _, p := range pets {
		byOwner[p.OwnerID] = append(byOwner[p.OwnerID], p)
	}

	for ownerID, owned := range byOwner {
		hasDragon := false
		for _, p := range owned {
			if p.Species == pet.SpeciesDragon {
				hasDragon = true
				break
			}
		}
		if !hasDragon {
			continue
		}

		buffed := 0
		for _, p := range owned {
			if p.Species == pet.SpeciesDragon {
				continue
			}
			next := pet.ApplyDragonBonus(p, now)
			expected := p.Version
			next.Version = expected + 1
			if err := u.Pets.SaveWithVersion(ctx, next, expected); err != nil {
				u.recordStepFailure("dragon", p.ID, err)
				continue
			}
			buffed++
		}
		if buffed > 0 {
			u.appendNotice(ctx, pet.Notice{
				OwnerID:    ownerID,
				Kind:       pet.NoticeDragonBuff,
				Message:    fmt.Sprintf("Dragon power activated! %d pets gained +%d XP!", buffed, pet.DragonBonusXP),
				OccurredAt: now,
			})
		}
	}

	u.recordTick("dragon")
	return nil
}

func (u UseCase) deleteRunaway(ctx context.Context, p pet.Pet, now time.Time) error {
	if err := u.Pets.Delete(ctx, p.ID); err != nil {
		return err
	}
	if err := u.Activations.Delete(ctx, p.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	u.appendNotice(ctx, pet.Notice{
		OwnerID:    p.OwnerID,
		PetID:      p.ID,
		Kind:       pet.NoticeRanAway,
		Message:    fmt.Sprintf("%s ran away because their needs weren't met...", p.Name),
		OccurredAt: now,
	})
	return nil
}

// recordStepFailure logs a per-pet failure without halting the tick.
// Version conflicts are routine: the pet was touched by a user action
// mid-tick and will be settled on the next pass.
func (u UseCase) recordStepFailure(task, petID string, err error) {
	if errors.Is(err, ports.ErrConflict) {
		if u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
		return
	}
	if u.Metrics != nil {
		u.Metrics.RecordFailure()
	}
	u.logf("lifecycle %s: pet %s: %v", task, petID, err)
}

func (u UseCase) recordTick(task string) {
	if u.Metrics != nil {
		u.Metrics.RecordTick(task)
	}
}

func (u UseCase) appendNotice(ctx context.Context, n pet.Notice) {
	if u.Notices == nil {
		return
	}
	if err := u.Notices.Append(ctx, []pet.Notice{n}); err != nil {
		u.logf("lifecycle: append notice: %v", err)
	}
}
