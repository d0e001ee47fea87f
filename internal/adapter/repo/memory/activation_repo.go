package memory

import (
	"context"
	"sort"

	"critterkeep/internal/app/ports"
)

type ActivationRepo struct {
	store *Store
}

func NewActivationRepo(store *Store) ActivationRepo {
	return ActivationRepo{store: store}
}

func (r ActivationRepo) Create(ctx context.Context, ownerID, petID string, active bool) error {
	defer r.store.lock(ctx)()
	if _, exists := r.store.activations[petID]; exists {
		return ports.ErrConflict
	}
	r.store.activations[petID] = activation{OwnerID: ownerID, Active: active}
	return nil
}

func (r ActivationRepo) SetActive(ctx context.Context, ownerID, petID string, active bool) error {
	defer r.store.lock(ctx)()
	a, ok := r.store.activations[petID]
	if !ok || a.OwnerID != ownerID {
		return ports.ErrNotFound
	}
	a.Active = active
	r.store.activations[petID] = a
	return nil
}

func (r ActivationRepo) DeactivateAll(ctx context.Context, ownerID string) error {
	defer r.store.lock(ctx)()
	for petID, a := range r.store.activations {
		if a.OwnerID == ownerID && a.Active {
			a.Active = false
			r.store.activations[petID] = a
		}
	}
	return nil
}

func (r ActivationRepo) ListActivePetIDs(ctx context.Context, ownerID string) ([]string, error) {
	defer r.store.lock(ctx)()
	ids := []string{}
	for petID, a := range r.store.activations {
		if a.OwnerID == ownerID && a.Active {
			ids = append(ids, petID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r ActivationRepo) ListAllActivePetIDs(ctx context.Context) ([]string, error) {
	defer r.store.lock(ctx)()
	ids := []string{}
	for petID, a := range r.store.activations {
		if a.Active {
			ids = append(ids, petID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r ActivationRepo) Delete(ctx context.Context, petID string) error {
	defer r.store.lock(ctx)()
	delete(r.store.activations, petID)
	return nil
}

func (r ActivationRepo) TransferOwner(ctx context.Context, petID, newOwnerID string) error {
	defer r.store.lock(ctx)()
	a, ok := r.store.activations[petID]
	if !ok {
		return ports.ErrNotFound
	}
	a.OwnerID = newOwnerID
	a.Active = false
	r.store.activations[petID] = a
	return nil
}
