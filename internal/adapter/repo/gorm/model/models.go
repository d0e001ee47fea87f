// Package model holds the row types backing the postgres schema. Kept in
// sync with the migrations by hand.
package model

import "time"

type Pet struct {
	ID            string `gorm:"column:id;primaryKey"`
	OwnerID       string `gorm:"column:owner_id;index"`
	OwnerNickname string `gorm:"column:owner_nickname"`
	Name          string `gorm:"column:name"`
	Species       string `gorm:"column:species"`
	Breed         string `gorm:"column:breed"`

	Hunger      int32 `gorm:"column:hunger"`
	Happiness   int32 `gorm:"column:happiness"`
	Cleanliness int32 `gorm:"column:cleanliness"`
	Energy      int32 `gorm:"column:energy"`
	Thirst      int32 `gorm:"column:thirst"`

	Level int32 `gorm:"column:level"`
	Xp    int32 `gorm:"column:xp"`
	Coins int32 `gorm:"column:coins"`

	HatEmoji     string `gorm:"column:hat_emoji"`
	ToyEmoji     string `gorm:"column:toy_emoji"`
	EyewearEmoji string `gorm:"column:eyewear_emoji"`

	LastFed           time.Time  `gorm:"column:last_fed"`
	LastPlayed        time.Time  `gorm:"column:last_played"`
	LastCleaned       time.Time  `gorm:"column:last_cleaned"`
	LastToyPlayed     *time.Time `gorm:"column:last_toy_played"`
	ToyPlayCount      int32      `gorm:"column:toy_play_count"`
	LastMutationCheck time.Time  `gorm:"column:last_mutation_check"`

	// Per-activity cooldown stamps, serialized as a JSON object keyed by
	// activity type.
	LastActivity []byte `gorm:"column:last_activity;type:jsonb"`

	CurrentEvent   string     `gorm:"column:current_event"`
	EventStartedAt *time.Time `gorm:"column:event_started_at"`

	Sleeping       bool       `gorm:"column:sleeping"`
	SleepStartedAt *time.Time `gorm:"column:sleep_started_at"`
	SleepEndsAt    *time.Time `gorm:"column:sleep_ends_at"`

	Version   int64     `gorm:"column:version"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Pet) TableName() string { return "pets" }

type PetActivation struct {
	PetID     string    `gorm:"column:pet_id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	Active    bool      `gorm:"column:active"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PetActivation) TableName() string { return "pet_activations" }

type AccessoryStack struct {
	ID        string    `gorm:"column:id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	ItemID    string    `gorm:"column:item_id"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	Emoji     string    `gorm:"column:emoji"`
	Quantity  int32     `gorm:"column:quantity"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AccessoryStack) TableName() string { return "accessory_inventory" }

type HouseItem struct {
	ID        string    `gorm:"column:id;primaryKey"`
	OwnerID   string    `gorm:"column:owner_id;index"`
	ItemID    string    `gorm:"column:item_id"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	Emoji     string    `gorm:"column:emoji"`
	Placed    bool      `gorm:"column:placed"`
	Room      string    `gorm:"column:room"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (HouseItem) TableName() string { return "house_inventory" }

type ShopItem struct {
	ID    string `gorm:"column:id;primaryKey"`
	Name  string `gorm:"column:name"`
	Type  string `gorm:"column:type"`
	Emoji string `gorm:"column:emoji"`
	Price int32  `gorm:"column:price"`
}

func (ShopItem) TableName() string { return "shop_items" }

type LootItem struct {
	ID     string `gorm:"column:id;primaryKey"`
	Name   string `gorm:"column:name"`
	Type   string `gorm:"column:type"`
	Emoji  string `gorm:"column:emoji"`
	Rarity string `gorm:"column:rarity"`
}

func (LootItem) TableName() string { return "loot_items" }

type TradeRequest struct {
	ID          string    `gorm:"column:id;primaryKey"`
	SenderID    string    `gorm:"column:sender_id;index"`
	RecipientID string    `gorm:"column:recipient_id;index"`
	Status      string    `gorm:"column:status"`
	Message     string    `gorm:"column:message"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (TradeRequest) TableName() string { return "trade_requests" }

type TradeItem struct {
	ID             string `gorm:"column:id;primaryKey"`
	TradeID        string `gorm:"column:trade_id;index"`
	SenderOffering bool   `gorm:"column:sender_offering"`
	Kind           string `gorm:"column:kind"`
	ItemID         string `gorm:"column:item_id"`
	ItemName       string `gorm:"column:item_name"`
	ItemEmoji      string `gorm:"column:item_emoji"`
}

func (TradeItem) TableName() string { return "trade_items" }

type Notice struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID    string    `gorm:"column:owner_id;index"`
	PetID      string    `gorm:"column:pet_id"`
	Kind       string    `gorm:"column:kind"`
	Message    string    `gorm:"column:message"`
	OccurredAt time.Time `gorm:"column:occurred_at"`
}

func (Notice) TableName() string { return "notices" }

type UserCredential struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	KeySalt   []byte    `gorm:"column:key_salt"`
	KeyHash   []byte    `gorm:"column:key_hash"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (UserCredential) TableName() string { return "user_credentials" }
