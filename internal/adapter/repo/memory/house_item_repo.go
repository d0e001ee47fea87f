package memory

import (
	"context"
	"sort"

	"critterkeep/internal/app/ports"
)

type HouseItemRepo struct {
	store *Store
}

func NewHouseItemRepo(store *Store) HouseItemRepo {
	return HouseItemRepo{store: store}
}

func (r HouseItemRepo) Create(ctx context.Context, item ports.HouseItem) error {
	defer r.store.lock(ctx)()
	if _, exists := r.store.house[item.ID]; exists {
		return ports.ErrConflict
	}
	r.store.house[item.ID] = item
	return nil
}

func (r HouseItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]ports.HouseItem, error) {
	defer r.store.lock(ctx)()
	out := []ports.HouseItem{}
	for _, item := range r.store.house {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r HouseItemRepo) Place(ctx context.Context, id, ownerID, room string) error {
	defer r.store.lock(ctx)()
	item, ok := r.store.house[id]
	if !ok || item.OwnerID != ownerID {
		return ports.ErrNotFound
	}
	item.Placed = room != ""
	item.Room = room
	r.store.house[id] = item
	return nil
}

func (r HouseItemRepo) TransferOwner(ctx context.Context, itemID, fromOwnerID, toOwnerID string) error {
	defer r.store.lock(ctx)()
	ids := make([]string, 0, len(r.store.house))
	for id := range r.store.house {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		item := r.store.house[id]
		if item.ItemID == itemID && item.OwnerID == fromOwnerID {
			item.OwnerID = toOwnerID
			item.Placed = false
			item.Room = ""
			r.store.house[id] = item
			return nil
		}
	}
	return ports.ErrNotFound
}
