package gormrepo

import (
	"context"
	"time"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"

	"gorm.io/gorm"
)

type ActivationRepo struct {
	db *gorm.DB
}

func NewActivationRepo(db *gorm.DB) ActivationRepo {
	return ActivationRepo{db: db}
}

func (r ActivationRepo) Create(ctx context.Context, ownerID, petID string, active bool) error {
	row := model.PetActivation{
		PetID:     petID,
		OwnerID:   ownerID,
		Active:    active,
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

func (r ActivationRepo) SetActive(ctx context.Context, ownerID, petID string, active bool) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.PetActivation{}).
		Where("pet_id = ? AND owner_id = ?", petID, ownerID).
		Updates(map[string]any{"active": active, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r ActivationRepo) DeactivateAll(ctx context.Context, ownerID string) error {
	return getDBFromCtx(ctx, r.db).Model(&model.PetActivation{}).
		Where("owner_id = ? AND active", ownerID).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()}).Error
}

func (r ActivationRepo) ListActivePetIDs(ctx context.Context, ownerID string) ([]string, error) {
	ids := []string{}
	err := getDBFromCtx(ctx, r.db).Model(&model.PetActivation{}).
		Where("owner_id = ? AND active", ownerID).
		Order("pet_id ASC").
		Pluck("pet_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r ActivationRepo) ListAllActivePetIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := getDBFromCtx(ctx, r.db).Model(&model.PetActivation{}).
		Where("active").
		Order("pet_id ASC").
		Pluck("pet_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r ActivationRepo) Delete(ctx context.Context, petID string) error {
	return getDBFromCtx(ctx, r.db).Where("pet_id = ?", petID).Delete(&model.PetActivation{}).Error
}

func (r ActivationRepo) TransferOwner(ctx context.Context, petID, newOwnerID string) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.PetActivation{}).
		Where("pet_id = ?", petID).
		Updates(map[string]any{
			"owner_id":   newOwnerID,
			"active":     false,
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
