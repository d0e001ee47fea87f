package gormrepo

import (
	"context"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/domain/pet"

	"gorm.io/gorm"
)

type NoticeRepo struct {
	db *gorm.DB
}

func NewNoticeRepo(db *gorm.DB) NoticeRepo {
	return NoticeRepo{db: db}
}

func (r NoticeRepo) Append(ctx context.Context, notices []pet.Notice) error {
	if len(notices) == 0 {
		return nil
	}
	rows := make([]model.Notice, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, model.Notice{
			OwnerID:    n.OwnerID,
			PetID:      n.PetID,
			Kind:       n.Kind,
			Message:    n.Message,
			OccurredAt: n.OccurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r NoticeRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]pet.Notice, error) {
	rows := []model.Notice{}
	query := getDBFromCtx(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("occurred_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pet.Notice, 0, len(rows))
	for _, row := range rows {
		out = append(out, pet.Notice{
			OwnerID:    row.OwnerID,
			PetID:      row.PetID,
			Kind:       row.Kind,
			Message:    row.Message,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
