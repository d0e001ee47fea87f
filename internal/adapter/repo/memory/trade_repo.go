package memory

import (
	"context"
	"sort"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/trade"
)

type TradeRepo struct {
	store *Store
}

func NewTradeRepo(store *Store) TradeRepo {
	return TradeRepo{store: store}
}

func (r TradeRepo) Create(ctx context.Context, req trade.Request, items []trade.Item) error {
	defer r.store.lock(ctx)()
	if _, exists := r.store.trades[req.ID]; exists {
		return ports.ErrConflict
	}
	r.store.trades[req.ID] = req
	r.store.tradeItems[req.ID] = append([]trade.Item(nil), items...)
	return nil
}

func (r TradeRepo) GetByID(ctx context.Context, tradeID string) (trade.Request, error) {
	defer r.store.lock(ctx)()
	req, ok := r.store.trades[tradeID]
	if !ok {
		return trade.Request{}, ports.ErrNotFound
	}
	return req, nil
}

func (r TradeRepo) ListItems(ctx context.Context, tradeID string) ([]trade.Item, error) {
	defer r.store.lock(ctx)()
	return append([]trade.Item(nil), r.store.tradeItems[tradeID]...), nil
}

func (r TradeRepo) ListPendingByRecipient(ctx context.Context, recipientID string) ([]trade.Request, error) {
	defer r.store.lock(ctx)()
	out := []trade.Request{}
	for _, req := range r.store.trades {
		if req.RecipientID == recipientID && req.Status == trade.StatusPending {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// SetStatus only transitions pending trades; a trade already settled by a
// concurrent accept/reject/cancel reports ErrConflict.
func (r TradeRepo) SetStatus(ctx context.Context, tradeID string, status trade.Status, updatedAt time.Time) error {
	defer r.store.lock(ctx)()
	req, ok := r.store.trades[tradeID]
	if !ok {
		return ports.ErrNotFound
	}
	if req.Status != trade.StatusPending {
		return ports.ErrConflict
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	r.store.trades[tradeID] = req
	return nil
}
