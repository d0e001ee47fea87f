package memory

import (
	"context"
	"sort"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

type PetRepo struct {
	store *Store
}

func NewPetRepo(store *Store) PetRepo {
	return PetRepo{store: store}
}

func (r PetRepo) GetByID(ctx context.Context, petID string) (pet.Pet, error) {
	defer r.store.lock(ctx)()
	p, ok := r.store.pets[petID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PetRepo) GetByIDs(ctx context.Context, petIDs []string) ([]pet.Pet, error) {
	defer r.store.lock(ctx)()
	out := make([]pet.Pet, 0, len(petIDs))
	for _, id := range petIDs {
		if p, ok := r.store.pets[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r PetRepo) ListByOwnerCoinsDesc(ctx context.Context, ownerID string) ([]pet.Pet, error) {
	defer r.store.lock(ctx)()
	out := []pet.Pet{}
	for _, p := range r.store.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coins != out[j].Coins {
			return out[i].Coins > out[j].Coins
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r PetRepo) Create(ctx context.Context, p pet.Pet) error {
	defer r.store.lock(ctx)()
	if _, exists := r.store.pets[p.ID]; exists {
		return ports.ErrConflict
	}
	r.store.pets[p.ID] = p
	return nil
}

func (r PetRepo) SaveWithVersion(ctx context.Context, p pet.Pet, expectedVersion int64) error {
	defer r.store.lock(ctx)()
	current, ok := r.store.pets[p.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.pets[p.ID] = p
	return nil
}

func (r PetRepo) Delete(ctx context.Context, petID string) error {
	defer r.store.lock(ctx)()
	delete(r.store.pets, petID)
	return nil
}

func (r PetRepo) NicknameTaken(ctx context.Context, nickname, exceptOwnerID string) (bool, error) {
	defer r.store.lock(ctx)()
	for _, p := range r.store.pets {
		if p.OwnerNickname == nickname && p.OwnerID != exceptOwnerID {
			return true, nil
		}
	}
	return false, nil
}

func (r PetRepo) TransferOwner(ctx context.Context, petID, newOwnerID string) error {
	defer r.store.lock(ctx)()
	p, ok := r.store.pets[petID]
	if !ok {
		return ports.ErrNotFound
	}
	p.OwnerID = newOwnerID
	r.store.pets[petID] = p
	return nil
}
