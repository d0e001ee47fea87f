package trading

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/trade"
)

var (
	ErrInvalidRequest  = errors.New("invalid trade request")
	ErrSelfTrade       = errors.New("cannot trade with yourself")
	ErrNotRecipient    = errors.New("only the recipient can settle this trade")
	ErrNotSender       = errors.New("only the sender can cancel this trade")
	ErrNotPending      = errors.New("trade is no longer pending")
	ErrItemNotOwned    = errors.New("offered item is not owned by its side")
	ErrUnknownItemKind = errors.New("unknown trade item kind")
)

type OfferedItem struct {
	Kind           trade.ItemKind `json:"kind"`
	ItemID         string         `json:"item_id"`
	ItemName       string         `json:"item_name"`
	ItemEmoji      string         `json:"item_emoji"`
	SenderOffering bool           `json:"sender_offering"`
}

type CreateRequest struct {
	SenderID    string
	RecipientID string
	Message     string
	Items       []OfferedItem
}

type TradeView struct {
	Trade trade.Request `json:"trade"`
	Items []trade.Item  `json:"items"`
}

// UseCase covers the trade lifecycle: create an offer, and settle it as
// the recipient (accept or reject) or walk away as the sender (cancel).
// Settlement moves every listed item inside one transaction; pets and
// house items transfer by identity, accessories move one stack unit.
type UseCase struct {
	Trades      ports.TradeRepository
	Pets        ports.PetRepository
	Activations ports.ActivationRepository
	Accessories ports.AccessoryRepository
	HouseItems  ports.HouseItemRepository
	Tx          ports.TxManager
	Metrics     ports.EngineMetrics
	Now         func() time.Time
	NewID       func() string
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (TradeView, error) {
	if req.SenderID == "" || req.RecipientID == "" || len(req.Items) == 0 {
		return TradeView{}, ErrInvalidRequest
	}
	if req.SenderID == req.RecipientID {
		return TradeView{}, ErrSelfTrade
	}
	now := u.Now().UTC()
	newID := u.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	items := make([]trade.Item, 0, len(req.Items))
	tradeID := newID()
	for _, it := range req.Items {
		if !trade.ValidKind(it.Kind) {
			return TradeView{}, ErrUnknownItemKind
		}
		if it.Kind == trade.KindPet {
			owner := req.RecipientID
			if it.SenderOffering {
				owner = req.SenderID
			}
			p, err := u.Pets.GetByID(ctx, it.ItemID)
			if err != nil {
				return TradeView{}, err
			}
			if p.OwnerID != owner {
				return TradeView{}, ErrItemNotOwned
			}
			it.ItemName = p.Name
		}
		items = append(items, trade.Item{
			ID:             newID(),
			TradeID:        tradeID,
			SenderOffering: it.SenderOffering,
			Kind:           it.Kind,
			ItemID:         it.ItemID,
			ItemName:       it.ItemName,
			ItemEmoji:      it.ItemEmoji,
		})
	}

	req1 := trade.Request{
		ID:          tradeID,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Status:      trade.StatusPending,
		Message:     req.Message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.Trades.Create(ctx, req1, items); err != nil {
		return TradeView{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("trade:create")
	}
	return TradeView{Trade: req1, Items: items}, nil
}

func (u UseCase) Accept(ctx context.Context, userID, tradeID string) error {
	now := u.Now().UTC()

	err := u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := u.Trades.GetByID(ctx, tradeID)
		if err != nil {
			return err
		}
		if t.RecipientID != userID {
			return ErrNotRecipient
		}
		if t.Status != trade.StatusPending {
			return ErrNotPending
		}

		items, err := u.Trades.ListItems(ctx, tradeID)
		if err != nil {
			return err
		}
		for _, item := range items {
			from, to := t.RecipientID, t.SenderID
			if item.SenderOffering {
				from, to = t.SenderID, t.RecipientID
			}
			if err := u.transferItem(ctx, item, from, to); err != nil {
				return err
			}
		}
		return u.Trades.SetStatus(ctx, tradeID, trade.StatusAccepted, now)
	})
	if err != nil {
		return err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("trade:accept")
	}
	return nil
}

func (u UseCase) transferItem(ctx context.Context, item trade.Item, from, to string) error {
	switch {
	case item.Kind == trade.KindPet:
		if err := u.Pets.TransferOwner(ctx, item.ItemID, to); err != nil {
			return err
		}
		if err := u.Activations.TransferOwner(ctx, item.ItemID, to); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
		return nil
	case item.Kind.ByIdentity():
		return u.HouseItems.TransferOwner(ctx, item.ItemID, from, to)
	default:
		// Accessories move one stack unit. A giver without the stack
		// contributes nothing; the trade still settles.
		stack, err := u.Accessories.Get(ctx, from, item.ItemID)
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := u.Accessories.Decrement(ctx, from, item.ItemID); err != nil {
			return err
		}
		return u.Accessories.Increment(ctx, to, ports.ItemRef{
			ItemID: stack.ItemID,
			Name:   stack.Name,
			Type:   stack.Type,
			Emoji:  stack.Emoji,
		})
	}
}

func (u UseCase) Reject(ctx context.Context, userID, tradeID string) error {
	t, err := u.Trades.GetByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if t.RecipientID != userID {
		return ErrNotRecipient
	}
	if t.Status != trade.StatusPending {
		return ErrNotPending
	}
	if err := u.Trades.SetStatus(ctx, tradeID, trade.StatusRejected, u.Now().UTC()); err != nil {
		return err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("trade:reject")
	}
	return nil
}

func (u UseCase) Cancel(ctx context.Context, userID, tradeID string) error {
	t, err := u.Trades.GetByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if t.SenderID != userID {
		return ErrNotSender
	}
	if t.Status != trade.StatusPending {
		return ErrNotPending
	}
	return u.Trades.SetStatus(ctx, tradeID, trade.StatusCancelled, u.Now().UTC())
}

// ListIncoming returns the user's pending trade offers with their items.
func (u UseCase) ListIncoming(ctx context.Context, userID string) ([]TradeView, error) {
	pending, err := u.Trades.ListPendingByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]TradeView, 0, len(pending))
	for _, t := range pending {
		items, err := u.Trades.ListItems(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TradeView{Trade: t, Items: items})
	}
	return out, nil
}
