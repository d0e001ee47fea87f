package gormrepo

import (
	"context"
	"errors"
	"time"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"

	"gorm.io/gorm"
)

type HouseItemRepo struct {
	db *gorm.DB
}

func NewHouseItemRepo(db *gorm.DB) HouseItemRepo {
	return HouseItemRepo{db: db}
}

func (r HouseItemRepo) Create(ctx context.Context, item ports.HouseItem) error {
	row := model.HouseItem{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		ItemID:    item.ItemID,
		Name:      item.Name,
		Type:      item.Type,
		Emoji:     item.Emoji,
		Placed:    item.Placed,
		Room:      item.Room,
		UpdatedAt: time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r HouseItemRepo) ListByOwner(ctx context.Context, ownerID string) ([]ports.HouseItem, error) {
	rows := []model.HouseItem{}
	err := getDBFromCtx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.HouseItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.HouseItem{
			ID:      row.ID,
			OwnerID: row.OwnerID,
			ItemID:  row.ItemID,
			Name:    row.Name,
			Type:    row.Type,
			Emoji:   row.Emoji,
			Placed:  row.Placed,
			Room:    row.Room,
		})
	}
	return out, nil
}

func (r HouseItemRepo) Place(ctx context.Context, id, ownerID, room string) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.HouseItem{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{
			"placed":     room != "",
			"room":       room,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r HouseItemRepo) TransferOwner(ctx context.Context, itemID, fromOwnerID, toOwnerID string) error {
	db := getDBFromCtx(ctx, r.db)
	var row model.HouseItem
	err := db.Where("item_id = ? AND owner_id = ?", itemID, fromOwnerID).
		Order("id ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return err
	}
	// The item arrives unplaced in the new owner's storage.
	return db.Model(&model.HouseItem{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"owner_id":   toOwnerID,
			"placed":     false,
			"room":       "",
			"updated_at": time.Now().UTC(),
		}).Error
}
