package gormrepo

import (
	"context"
	"errors"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"

	"gorm.io/gorm"
)

type CatalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return CatalogRepo{db: db}
}

func (r CatalogRepo) GetItem(ctx context.Context, itemID string) (ports.ShopItem, error) {
	var row model.ShopItem
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", itemID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ShopItem{}, ports.ErrNotFound
		}
		return ports.ShopItem{}, err
	}
	return shopItemFromRow(row), nil
}

func (r CatalogRepo) FindByEmojiType(ctx context.Context, emoji, itemType string) (ports.ShopItem, error) {
	var row model.ShopItem
	err := getDBFromCtx(ctx, r.db).
		Where("emoji = ? AND type = ?", emoji, itemType).
		Order("id ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ShopItem{}, ports.ErrNotFound
		}
		return ports.ShopItem{}, err
	}
	return shopItemFromRow(row), nil
}

func (r CatalogRepo) ListItems(ctx context.Context) ([]ports.ShopItem, error) {
	rows := []model.ShopItem{}
	if err := getDBFromCtx(ctx, r.db).Order("price ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.ShopItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, shopItemFromRow(row))
	}
	return out, nil
}

func (r CatalogRepo) ListLoot(ctx context.Context) ([]ports.LootItem, error) {
	rows := []model.LootItem{}
	if err := getDBFromCtx(ctx, r.db).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.LootItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.LootItem{
			ID:     row.ID,
			Name:   row.Name,
			Type:   row.Type,
			Emoji:  row.Emoji,
			Rarity: row.Rarity,
		})
	}
	return out, nil
}

func shopItemFromRow(row model.ShopItem) ports.ShopItem {
	return ports.ShopItem{
		ID:    row.ID,
		Name:  row.Name,
		Type:  row.Type,
		Emoji: row.Emoji,
		Price: int(row.Price),
	}
}
