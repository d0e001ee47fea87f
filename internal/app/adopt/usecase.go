package adopt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var (
	ErrInvalidRequest    = errors.New("invalid adoption request")
	ErrUnknownSpecies    = errors.New("unknown species")
	ErrSpeciesLocked     = errors.New("species not unlocked yet")
	ErrInsufficientCoins = errors.New("not enough coins across your pets")
	ErrNicknameTaken     = errors.New("nickname already taken")
)

type Request struct {
	OwnerID  string
	Name     string
	Species  pet.Species
	Breed    string
	Nickname string
}

type Response struct {
	Pet        pet.Pet `json:"pet"`
	CoinsSpent int     `json:"coins_spent"`
}

// UseCase adopts a new pet. The species must be unlocked by the owner's
// highest pet level, and the adoption fee is paid greedily across the
// owner's pets, richest first. Everything runs in one transaction so a
// partially paid adoption can't happen.
type UseCase struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Tx          ports.TxManager
	Metrics     ports.EngineMetrics
	Now         func() time.Time
	NewID       func() string
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.OwnerID == "" || req.Name == "" {
		return Response{}, ErrInvalidRequest
	}
	if !pet.ValidSpecies(req.Species) {
		return Response{}, ErrUnknownSpecies
	}

	now := u.Now().UTC()
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	var resp Response
	err := u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		owned, err := u.Pets.ListByOwnerCoinsDesc(ctx, req.OwnerID)
		if err != nil {
			return err
		}

		highest := 1
		for _, p := range owned {
			if p.Level > highest {
				highest = p.Level
			}
		}
		if pet.SpeciesUnlockLevels[req.Species] > highest {
			return ErrSpeciesLocked
		}

		cost := pet.AdoptionCost(req.Species)
		if cost > 0 {
			total := 0
			for _, p := range owned {
				total += p.Coins
			}
			if total < cost {
				return ErrInsufficientCoins
			}
			remaining := cost
			for _, p := range owned {
				if remaining <= 0 {
					break
				}
				deduction := p.Coins
				if deduction > remaining {
					deduction = remaining
				}
				expected := p.Version
				p.Coins -= deduction
				p.UpdatedAt = now
				p.Version = expected + 1
				if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
					return err
				}
				remaining -= deduction
			}
		}

		nickname := req.Nickname
		if nickname == "" && len(owned) > 0 {
			nickname = owned[0].OwnerNickname
		}
		if nickname != "" {
			taken, err := u.Pets.NicknameTaken(ctx, nickname, req.OwnerID)
			if err != nil {
				return err
			}
			if taken {
				return ErrNicknameTaken
			}
		}

		newPet := pet.NewPet(newID(), req.OwnerID, req.Name, req.Species, req.Breed, nickname, now)
		if err := u.Pets.Create(ctx, newPet); err != nil {
			return err
		}
		// Adopted pets start in storage; the owner activates them
		// explicitly.
		if err := u.Activations.Create(ctx, req.OwnerID, newPet.ID, false); err != nil {
			return err
		}

		resp = Response{Pet: newPet, CoinsSpent: cost}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("adopt")
	}
	return resp, nil
}
