package memory

import (
	"context"

	"critterkeep/internal/app/ports"
)

type CatalogRepo struct {
	store *Store
}

func NewCatalogRepo(store *Store) CatalogRepo {
	return CatalogRepo{store: store}
}

func (r CatalogRepo) GetItem(ctx context.Context, itemID string) (ports.ShopItem, error) {
	defer r.store.lock(ctx)()
	for _, item := range r.store.shopItems {
		if item.ID == itemID {
			return item, nil
		}
	}
	return ports.ShopItem{}, ports.ErrNotFound
}

func (r CatalogRepo) FindByEmojiType(ctx context.Context, emoji, itemType string) (ports.ShopItem, error) {
	defer r.store.lock(ctx)()
	for _, item := range r.store.shopItems {
		if item.Emoji == emoji && item.Type == itemType {
			return item, nil
		}
	}
	return ports.ShopItem{}, ports.ErrNotFound
}

func (r CatalogRepo) ListItems(ctx context.Context) ([]ports.ShopItem, error) {
	defer r.store.lock(ctx)()
	return append([]ports.ShopItem(nil), r.store.shopItems...), nil
}

func (r CatalogRepo) ListLoot(ctx context.Context) ([]ports.LootItem, error) {
	defer r.store.lock(ctx)()
	return append([]ports.LootItem(nil), r.store.lootItems...), nil
}
