package ports

import (
	"context"
	"time"

	"critterkeep/internal/domain/pet"
	"critterkeep/internal/domain/trade"
)

type PetRepository interface {
	GetByID(ctx context.Context, petID string) (pet.Pet, error)
	GetByIDs(ctx context.Context, petIDs []string) ([]pet.Pet, error)
	// ListByOwnerCoinsDesc orders by coin balance, richest first; the
	// adoption payment scan depends on this ordering.
	ListByOwnerCoinsDesc(ctx context.Context, ownerID string) ([]pet.Pet, error)
	Create(ctx context.Context, p pet.Pet) error
	// SaveWithVersion applies a conditional update on (id, version) and
	// returns ErrConflict when the row moved underneath the caller.
	SaveWithVersion(ctx context.Context, p pet.Pet, expectedVersion int64) error
	Delete(ctx context.Context, petID string) error
	// NicknameTaken reports whether any pet of a different owner already
	// holds the nickname; nicknames are globally unique.
	NicknameTaken(ctx context.Context, nickname, exceptOwnerID string) (bool, error)
	TransferOwner(ctx context.Context, petID, newOwnerID string) error
}

// ActivationRepository tracks which of a user's pets are out of storage.
// Only active pets are ticked by the simulation engines.
type ActivationRepository interface {
	Create(ctx context.Context, ownerID, petID string, active bool) error
	SetActive(ctx context.Context, ownerID, petID string, active bool) error
	DeactivateAll(ctx context.Context, ownerID string) error
	ListActivePetIDs(ctx context.Context, ownerID string) ([]string, error)
	ListAllActivePetIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, petID string) error
	TransferOwner(ctx context.Context, petID, newOwnerID string) error
}

// ItemRef identifies a catalog item as denormalized onto inventory rows.
type ItemRef struct {
	ItemID string
	Name   string
	Type   string
	Emoji  string
}

type AccessoryStack struct {
	ID       string
	OwnerID  string
	ItemID   string
	Name     string
	Type     string
	Emoji    string
	Quantity int
}

type AccessoryRepository interface {
	Get(ctx context.Context, ownerID, itemID string) (AccessoryStack, error)
	ListByOwner(ctx context.Context, ownerID string) ([]AccessoryStack, error)
	// Increment adds one unit, inserting the stack at quantity 1 when the
	// owner has none.
	Increment(ctx context.Context, ownerID string, ref ItemRef) error
	// Decrement removes one unit with a floor of zero.
	Decrement(ctx context.Context, ownerID, itemID string) error
	// Take removes one unit and deletes the row when it empties; used by
	// equip, which moves the unit onto the pet.
	Take(ctx context.Context, ownerID, itemID string) error
}

type HouseItem struct {
	ID      string
	OwnerID string
	ItemID  string
	Name    string
	Type    string
	Emoji   string
	Placed  bool
	Room    string
}

type HouseItemRepository interface {
	Create(ctx context.Context, item HouseItem) error
	ListByOwner(ctx context.Context, ownerID string) ([]HouseItem, error)
	// Place marks an owned row as placed in a room, or back in storage
	// when room is empty.
	Place(ctx context.Context, id, ownerID, room string) error
	// TransferOwner moves one row matching (itemID, fromOwner) to toOwner.
	TransferOwner(ctx context.Context, itemID, fromOwnerID, toOwnerID string) error
}

type ShopItem struct {
	ID    string
	Name  string
	Type  string
	Emoji string
	Price int
}

type LootItem struct {
	ID     string
	Name   string
	Type   string
	Emoji  string
	Rarity string
}

type CatalogRepository interface {
	GetItem(ctx context.Context, itemID string) (ShopItem, error)
	// FindByEmojiType resolves the catalog item behind an equipped slot;
	// pets store only the emoji.
	FindByEmojiType(ctx context.Context, emoji, itemType string) (ShopItem, error)
	ListItems(ctx context.Context) ([]ShopItem, error)
	ListLoot(ctx context.Context) ([]LootItem, error)
}

type TradeRepository interface {
	Create(ctx context.Context, req trade.Request, items []trade.Item) error
	GetByID(ctx context.Context, tradeID string) (trade.Request, error)
	ListItems(ctx context.Context, tradeID string) ([]trade.Item, error)
	ListPendingByRecipient(ctx context.Context, recipientID string) ([]trade.Request, error)
	SetStatus(ctx context.Context, tradeID string, status trade.Status, updatedAt time.Time) error
}

type NoticeRepository interface {
	Append(ctx context.Context, notices []pet.Notice) error
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]pet.Notice, error)
}

type UserCredentialRecord struct {
	UserID    string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type UserCredentialRepository interface {
	Create(ctx context.Context, credential UserCredentialRecord) error
	GetByUserID(ctx context.Context, userID string) (UserCredentialRecord, error)
}
