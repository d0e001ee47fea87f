package memory

import (
	"context"
	"sort"

	"critterkeep/internal/app/ports"

	"github.com/google/uuid"
)

type AccessoryRepo struct {
	store *Store
}

func NewAccessoryRepo(store *Store) AccessoryRepo {
	return AccessoryRepo{store: store}
}

func (r AccessoryRepo) Get(ctx context.Context, ownerID, itemID string) (ports.AccessoryStack, error) {
	defer r.store.lock(ctx)()
	stack, ok := r.store.accessories[stackKey(ownerID, itemID)]
	if !ok {
		return ports.AccessoryStack{}, ports.ErrNotFound
	}
	return stack, nil
}

func (r AccessoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]ports.AccessoryStack, error) {
	defer r.store.lock(ctx)()
	out := []ports.AccessoryStack{}
	for _, stack := range r.store.accessories {
		if stack.OwnerID == ownerID {
			out = append(out, stack)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r AccessoryRepo) Increment(ctx context.Context, ownerID string, ref ports.ItemRef) error {
	defer r.store.lock(ctx)()
	key := stackKey(ownerID, ref.ItemID)
	if stack, ok := r.store.accessories[key]; ok {
		stack.Quantity++
		r.store.accessories[key] = stack
		return nil
	}
	r.store.accessories[key] = ports.AccessoryStack{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		ItemID:   ref.ItemID,
		Name:     ref.Name,
		Type:     ref.Type,
		Emoji:    ref.Emoji,
		Quantity: 1,
	}
	return nil
}

func (r AccessoryRepo) Decrement(ctx context.Context, ownerID, itemID string) error {
	defer r.store.lock(ctx)()
	key := stackKey(ownerID, itemID)
	stack, ok := r.store.accessories[key]
	if !ok || stack.Quantity <= 0 {
		return ports.ErrNotFound
	}
	stack.Quantity--
	r.store.accessories[key] = stack
	return nil
}

func (r AccessoryRepo) Take(ctx context.Context, ownerID, itemID string) error {
	defer r.store.lock(ctx)()
	key := stackKey(ownerID, itemID)
	stack, ok := r.store.accessories[key]
	if !ok || stack.Quantity <= 0 {
		return ports.ErrNotFound
	}
	stack.Quantity--
	if stack.Quantity == 0 {
		delete(r.store.accessories, key)
		return nil
	}
	r.store.accessories[key] = stack
	return nil
}
