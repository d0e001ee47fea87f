package gormrepo

import (
	"context"
	"errors"
	"time"

	"critterkeep/internal/adapter/repo/gorm/model"
	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/trade"

	"gorm.io/gorm"
)

type TradeRepo struct {
	db *gorm.DB
}

func NewTradeRepo(db *gorm.DB) TradeRepo {
	return TradeRepo{db: db}
}

func (r TradeRepo) Create(ctx context.Context, req trade.Request, items []trade.Item) error {
	db := getDBFromCtx(ctx, r.db)
	row := model.TradeRequest{
		ID:          req.ID,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Status:      string(req.Status),
		Message:     req.Message,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	if len(items) == 0 {
		return nil
	}
	rows := make([]model.TradeItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, model.TradeItem{
			ID:             it.ID,
			TradeID:        it.TradeID,
			SenderOffering: it.SenderOffering,
			Kind:           string(it.Kind),
			ItemID:         it.ItemID,
			ItemName:       it.ItemName,
			ItemEmoji:      it.ItemEmoji,
		})
	}
	return db.Create(&rows).Error
}

func (r TradeRepo) GetByID(ctx context.Context, tradeID string) (trade.Request, error) {
	var row model.TradeRequest
	if err := getDBFromCtx(ctx, r.db).Where("id = ?", tradeID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return trade.Request{}, ports.ErrNotFound
		}
		return trade.Request{}, err
	}
	return tradeFromRow(row), nil
}

func (r TradeRepo) ListItems(ctx context.Context, tradeID string) ([]trade.Item, error) {
	rows := []model.TradeItem{}
	err := getDBFromCtx(ctx, r.db).
		Where("trade_id = ?", tradeID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]trade.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, trade.Item{
			ID:             row.ID,
			TradeID:        row.TradeID,
			SenderOffering: row.SenderOffering,
			Kind:           trade.ItemKind(row.Kind),
			ItemID:         row.ItemID,
			ItemName:       row.ItemName,
			ItemEmoji:      row.ItemEmoji,
		})
	}
	return out, nil
}

func (r TradeRepo) ListPendingByRecipient(ctx context.Context, recipientID string) ([]trade.Request, error) {
	rows := []model.TradeRequest{}
	err := getDBFromCtx(ctx, r.db).
		Where("recipient_id = ? AND status = ?", recipientID, string(trade.StatusPending)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]trade.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, tradeFromRow(row))
	}
	return out, nil
}

// SetStatus only transitions pending trades, so two concurrent settlements
// of the same trade cannot both run their transfers: the loser's update
// matches zero rows and reports ErrConflict.
func (r TradeRepo) SetStatus(ctx context.Context, tradeID string, status trade.Status, updatedAt time.Time) error {
	res := getDBFromCtx(ctx, r.db).Model(&model.TradeRequest{}).
		Where("id = ? AND status = ?", tradeID, string(trade.StatusPending)).
		Updates(map[string]any{"status": string(status), "updated_at": updatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func tradeFromRow(row model.TradeRequest) trade.Request {
	return trade.Request{
		ID:          row.ID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Status:      trade.Status(row.Status),
		Message:     row.Message,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
