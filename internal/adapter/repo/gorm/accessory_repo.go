package gormrepo

import (
	"context"
	"errors"
	"time"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessoryRepo struct {
	db *gorm.DB
}

func NewAccessoryRepo(db *gorm.DB) AccessoryRepo {
	return AccessoryRepo{db: db}
}

func (r AccessoryRepo) Get(ctx context.Context, ownerID, itemID string) (ports.AccessoryStack, error) {
	var row model.AccessoryStack
	err := getDBFromCtx(ctx, r.db).
		Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AccessoryStack{}, ports.ErrNotFound
		}
		return ports.AccessoryStack{}, err
	}
	return stackFromRow(row), nil
}

func (r AccessoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]ports.AccessoryStack, error) {
	rows := []model.AccessoryStack{}
	err := getDBFromCtx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.AccessoryStack, 0, len(rows))
	for _, row := range rows {
		out = append(out, stackFromRow(row))
	}
	return out, nil
}

func (r AccessoryRepo) Increment(ctx context.Context, ownerID string, ref ports.ItemRef) error {
	db := getDBFromCtx(ctx, r.db)
	res := db.Model(&model.AccessoryStack{}).
		Where("owner_id = ? AND item_id = ?", ownerID, ref.ItemID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	row := model.AccessoryStack{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ItemID:    ref.ItemID,
		Name:      ref.Name,
		Type:      ref.Type,
		Emoji:     ref.Emoji,
		Quantity:  1,
		UpdatedAt: time.Now().UTC(),
	}
	return db.Create(&row).Error
}

func (r AccessoryRepo) Decrement(ctx context.Context, ownerID, itemID string) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.AccessoryStack{}).
		Where("owner_id = ? AND item_id = ? AND quantity > 0", ownerID, itemID).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - 1"),
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

func (r AccessoryRepo) Take(ctx context.Context, ownerID, itemID string) error {
	db := getDBFromCtx(ctx, r.db)
	if err := r.Decrement(ctx, ownerID, itemID); err != nil {
		return err
	}
	// Emptied stacks disappear from the inventory.
	return db.Where("owner_id = ? AND item_id = ? AND quantity <= 0", ownerID, itemID).
		Delete(&model.AccessoryStack{}).Error
}

func stackFromRow(row model.AccessoryStack) ports.AccessoryStack {
	return ports.AccessoryStack{
		ID:       row.ID,
		OwnerID:  row.OwnerID,
		ItemID:   row.ItemID,
		Name:     row.Name,
		Type:     row.Type,
		Emoji:    row.Emoji,
		Quantity: int(row.Quantity),
	}
}
