package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var (
	ErrNotOwner      = errors.New("pet belongs to another user")
	ErrInvalidSlot   = errors.New("unknown accessory slot")
	ErrSlotMismatch  = errors.New("item does not fit that slot")
	ErrSlotOccupied  = errors.New("slot already has an accessory equipped")
	ErrNothingToWear = errors.New("accessory not in inventory")
	ErrSlotEmpty     = errors.New("nothing equipped in that slot")
	ErrUnknownRoom   = errors.New("unknown room")
)

const (
	SlotHat     = "hat"
	SlotToy     = "toy"
	SlotEyewear = "eyewear"
)

type PetView struct {
	Pet    pet.Pet `json:"pet"`
	Active bool    `json:"active"`
}

// UseCase covers pet roster management: listing, the single-active
// activation flag, accessory equip/unequip, house item placement, and
// release.
type UseCase struct {
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Accessories ports.AccessoryRepository
	HouseItems  ports.HouseItemRepository
	Catalog     ports.CatalogRepository
	Notices     ports.NoticeRepository
	Tx          ports.TxManager
	Metrics     ports.EngineMetrics
	Now         func() time.Time
}

func (u UseCase) ListPets(ctx context.Context, ownerID string) ([]PetView, error) {
	owned, err := u.Pets.ListByOwnerCoinsDesc(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	activeIDs, err := u.Activations.ListActivePetIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	active := make(map[string]bool, len(activeIDs))
	for _, id := range activeIDs {
		active[id] = true
	}
	out := make([]PetView, 0, len(owned))
	for _, p := range owned {
		out = append(out, PetView{Pet: p, Active: active[p.ID]})
	}
	return out, nil
}

func (u UseCase) ListActivePets(ctx context.Context, ownerID string) ([]pet.Pet, error) {
	ids, err := u.Activations.ListActivePetIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return u.Pets.GetByIDs(ctx, ids)
}

// Activate brings a stored pet out: every other pet of the owner goes back
// to storage first, so at most one pet is active.
func (u UseCase) Activate(ctx context.Context, ownerID, petID string) error {
	if err := u.ownedBy(ctx, ownerID, petID); err != nil {
		return err
	}
	return u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.Activations.DeactivateAll(ctx, ownerID); err != nil {
			return err
		}
		return u.Activations.SetActive(ctx, ownerID, petID, true)
	})
}

func (u UseCase) Deactivate(ctx context.Context, ownerID, petID string) error {
	if err := u.ownedBy(ctx, ownerID, petID); err != nil {
		return err
	}
	return u.Activations.SetActive(ctx, ownerID, petID, false)
}

// Release deletes a pet at the owner's request.
func (u UseCase) Release(ctx context.Context, ownerID, petID string) error {
	p, err := u.Pets.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrNotOwner
	}
	err = u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := u.Pets.Delete(ctx, petID); err != nil {
			return err
		}
		if err := u.Activations.Delete(ctx, petID); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	if u.Notices != nil {
		_ = u.Notices.Append(ctx, []pet.Notice{{
			OwnerID:    ownerID,
			PetID:      petID,
			Kind:       pet.NoticeRanAway,
			Message:    fmt.Sprintf("%s was released into the wild.", p.Name),
			OccurredAt: u.Now().UTC(),
		}})
	}
	return nil
}

// Equip moves one inventory unit of an accessory onto the pet's matching
// slot. The slot must be free; swapping means unequip first.
func (u UseCase) Equip(ctx context.Context, ownerID, petID, itemID string) (pet.Pet, error) {
	now := u.Now().UTC()

	var equipped pet.Pet
	err := u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := u.Pets.GetByID(ctx, petID)
		if err != nil {
			return err
		}
		if p.OwnerID != ownerID {
			return ErrNotOwner
		}

		stack, err := u.Accessories.Get(ctx, ownerID, itemID)
		if errors.Is(err, ports.ErrNotFound) {
			return ErrNothingToWear
		}
		if err != nil {
			return err
		}
		if stack.Quantity < 1 {
			return ErrNothingToWear
		}

		expected := p.Version
		switch stack.Type {
		case SlotHat:
			if p.Accessories.Hat != "" {
				return ErrSlotOccupied
			}
			p.Accessories.Hat = stack.Emoji
		case SlotToy:
			if p.Accessories.Toy != "" {
				return ErrSlotOccupied
			}
			p.Accessories.Toy = stack.Emoji
		case SlotEyewear:
			if p.Accessories.Eyewear != "" {
				return ErrSlotOccupied
			}
			p.Accessories.Eyewear = stack.Emoji
		default:
			return ErrSlotMismatch
		}

		if err := u.Accessories.Take(ctx, ownerID, itemID); err != nil {
			return err
		}

		p.UpdatedAt = now
		p.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
			return err
		}
		equipped = p
		return nil
	})
	if err != nil {
		return pet.Pet{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("roster:equip")
	}
	return equipped, nil
}

// Unequip clears a slot and returns the accessory to the owner's
// inventory. The catalog row is resolved by emoji and slot; if the item no
// longer exists in the catalog the slot is still cleared, matching how
// retired items behave.
func (u UseCase) Unequip(ctx context.Context, ownerID, petID, slot string) (pet.Pet, error) {
	now := u.Now().UTC()

	var cleared pet.Pet
	err := u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := u.Pets.GetByID(ctx, petID)
		if err != nil {
			return err
		}
		if p.OwnerID != ownerID {
			return ErrNotOwner
		}

		var emoji string
		expected := p.Version
		switch slot {
		case SlotHat:
			emoji = p.Accessories.Hat
			p.Accessories.Hat = ""
		case SlotToy:
			emoji = p.Accessories.Toy
			p.Accessories.Toy = ""
		case SlotEyewear:
			emoji = p.Accessories.Eyewear
			p.Accessories.Eyewear = ""
		default:
			return ErrInvalidSlot
		}
		if emoji == "" {
			return ErrSlotEmpty
		}

		p.UpdatedAt = now
		p.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
			return err
		}

		item, err := u.Catalog.FindByEmojiType(ctx, emoji, slot)
		if errors.Is(err, ports.ErrNotFound) {
			cleared = p
			return nil
		}
		if err != nil {
			return err
		}
		if err := u.Accessories.Increment(ctx, ownerID, ports.ItemRef{
			ItemID: item.ID, Name: item.Name, Type: item.Type, Emoji: item.Emoji,
		}); err != nil {
			return err
		}
		cleared = p
		return nil
	})
	if err != nil {
		return pet.Pet{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("roster:unequip")
	}
	return cleared, nil
}

func (u UseCase) ListAccessories(ctx context.Context, ownerID string) ([]ports.AccessoryStack, error) {
	return u.Accessories.ListByOwner(ctx, ownerID)
}

func (u UseCase) ListHouseItems(ctx context.Context, ownerID string) ([]ports.HouseItem, error) {
	return u.HouseItems.ListByOwner(ctx, ownerID)
}

// PlaceHouseItem puts a house item in a room, or back into storage when
// room is empty.
func (u UseCase) PlaceHouseItem(ctx context.Context, ownerID, id, room string) error {
	switch room {
	case "", "lower", "upper":
	default:
		return ErrUnknownRoom
	}
	return u.HouseItems.Place(ctx, id, ownerID, room)
}

func (u UseCase) ListNotices(ctx context.Context, ownerID string, limit int) ([]pet.Notice, error) {
	return u.Notices.ListByOwner(ctx, ownerID, limit)
}

func (u UseCase) ownedBy(ctx context.Context, ownerID, petID string) error {
	p, err := u.Pets.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
