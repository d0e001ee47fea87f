package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var (
	ErrUnknownActivity   = errors.New("unknown activity")
	ErrNotOwner          = errors.New("pet belongs to another user")
	ErrPetSick           = errors.New("pet is recovering from overeating")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrOnCooldown        = errors.New("activity on cooldown")
)

type Request struct {
	OwnerID string
	PetID   string
	Type    pet.ActivityType
}

type Response struct {
	Pet         *pet.Pet `json:"pet,omitempty"`
	XPAwarded   int      `json:"xp_awarded"`
	CoinsEarned int      `json:"coins_earned"`
	LeveledUp   bool     `json:"leveled_up"`
	BonusCoins  int      `json:"bonus_coins,omitempty"`
	RanAway     bool     `json:"ran_away,omitempty"`
}

// UseCase runs the paid outings. Unlike the basic care actions these cost
// coins, sit behind per-activity cooldowns, and pay out both XP and coins.
type UseCase struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Notices     ports.NoticeRepository
	Metrics     ports.EngineMetrics
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if !pet.ValidActivity(req.Type) {
		return Response{}, ErrUnknownActivity
	}
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

	act := pet.ActivityCatalog[req.Type]
	if remaining := pet.ActivityCooldownRemaining(p, req.Type, now); remaining > 0 {
		return Response{}, fmt.Errorf("%w: ready in %s", ErrOnCooldown, remaining.Round(time.Second))
	}
	if p.Coins < act.Cost {
		return Response{}, ErrInsufficientCoins
	}

	expected := p.Version

	res := pet.GrantXP(p, act.XPReward)
	p.XP, p.Level = res.XP, res.Level
	p.Coins = res.Coins + act.CoinReward - act.Cost
	p.ApplyEffects(act.Effects)

	if p.HasZeroVital() {
		return u.runAway(ctx, p, now)
	}

	last := make(map[pet.ActivityType]time.Time, len(p.LastActivity)+1)
	for k, v := range p.LastActivity {
		last[k] = v
	}
	last[req.Type] = now
	p.LastActivity = last
	p.UpdatedAt = now
	p.Version = expected + 1

	if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
		if errors.Is(err, ports.ErrConflict) && u.Metrics != nil {
			u.Metrics.RecordConflict()
		}
		return Response{}, err
	}

	if res.LeveledUp && u.Notices != nil {
		_ = u.Notices.Append(ctx, []pet.Notice{{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeLevelUp,
			Message:    fmt.Sprintf("%s leveled up to %d! +%d coins", p.Name, p.Level, res.BonusCoins),
			OccurredAt: now,
		}})
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("activity:" + string(req.Type))
	}

	return Response{
		Pet:         &p,
		XPAwarded:   act.XPReward,
		CoinsEarned: act.CoinReward,
		LeveledUp:   res.LeveledUp,
		BonusCoins:  res.BonusCoins,
	}, nil
}

func (u UseCase) runAway(ctx context.Context, p pet.Pet, now time.Time) (Response, error) {
	if err := u.Pets.Delete(ctx, p.ID); err != nil {
		return Response{}, err
	}
	if u.Activations != nil {
		if err := u.Activations.Delete(ctx, p.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return Response{}, err
		}
	}
	if u.Notices != nil {
		_ = u.Notices.Append(ctx, []pet.Notice{{
			OwnerID:    p.OwnerID,
			PetID:      p.ID,
			Kind:       pet.NoticeRanAway,
			Message:    fmt.Sprintf("%s ran away because their needs weren't met...", p.Name),
			OccurredAt: now,
		}})
	}
	return Response{RanAway: true}, nil
}
