package shop

import (
	"context"
	"errors"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var (
	ErrInvalidRequest    = errors.New("invalid purchase request")
	ErrNotOwner          = errors.New("pet belongs to another user")
	ErrInsufficientCoins = errors.New("not enough coins")
	ErrPriceMismatch     = errors.New("item price has changed")
	ErrEmptyLootTable    = errors.New("loot table is empty")
)

type PurchaseRequest struct {
	OwnerID   string
	PetID     string
	ItemID    string
	ItemPrice int
}

type PurchaseResponse struct {
	Item      ports.ShopItem `json:"item"`
	CoinsLeft int            `json:"coins_left"`
}

// PurchaseUseCase is the trusted purchase path. The client names an item
// and the price it saw; the server re-reads ownership, balance, and the
// catalog price, and rejects the purchase when any of them disagree. Item
// metadata is taken from the catalog row, never from the request.
type PurchaseUseCase struct {
	Pets        ports.PetRepository
	Catalog     ports.CatalogRepository
	Accessories ports.AccessoryRepository
	HouseItems  ports.HouseItemRepository
	Tx          ports.TxManager
	Metrics     ports.EngineMetrics
	Now         func() time.Time
	NewID       func() string
}

func (u PurchaseUseCase) Execute(ctx context.Context, req PurchaseRequest) (PurchaseResponse, error) {
	if req.OwnerID == "" || req.PetID == "" || req.ItemID == "" || req.ItemPrice < 0 {
		return PurchaseResponse{}, ErrInvalidRequest
	}
	now := u.Now().UTC()

	var resp PurchaseResponse
	err := u.Tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := u.Pets.GetByID(ctx, req.PetID)
		if err != nil {
			return err
		}
		if p.OwnerID != req.OwnerID {
			return ErrNotOwner
		}

		item, err := u.Catalog.GetItem(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if item.Price != req.ItemPrice {
			return ErrPriceMismatch
		}
		if p.Coins < item.Price {
			return ErrInsufficientCoins
		}

		ref := ports.ItemRef{ItemID: item.ID, Name: item.Name, Type: item.Type, Emoji: item.Emoji}
		switch item.Type {
		case "furniture", "decor":
			err = u.HouseItems.Create(ctx, ports.HouseItem{
				ID:      u.NewID(),
				OwnerID: req.OwnerID,
				ItemID:  item.ID,
				Name:    item.Name,
				Type:    item.Type,
				Emoji:   item.Emoji,
			})
		default:
			err = u.Accessories.Increment(ctx, req.OwnerID, ref)
		}
		if err != nil {
			return err
		}

		expected := p.Version
		p.Coins -= item.Price
		p.UpdatedAt = now
		p.Version = expected + 1
		if err := u.Pets.SaveWithVersion(ctx, p, expected); err != nil {
			return err
		}

		resp = PurchaseResponse{Item: item, CoinsLeft: p.Coins}
		return nil
	})
	if err != nil {
		return PurchaseResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("shop:purchase")
	}
	return resp, nil
}

type ChestResponse struct {
	Item ports.LootItem `json:"item"`
}

// OpenChestUseCase draws one item from the loot table: a weighted rarity
// roll first, then a uniform pick inside the rarity tier. The prize lands
// in the accessory inventory immediately.
type OpenChestUseCase struct {
	Catalog     ports.CatalogRepository
	Accessories ports.AccessoryRepository
	Metrics     ports.EngineMetrics
}

func (u OpenChestUseCase) Execute(ctx context.Context, ownerID string) (ChestResponse, error) {
	if ownerID == "" {
		return ChestResponse{}, ErrInvalidRequest
	}

	loot, err := u.Catalog.ListLoot(ctx)
	if err != nil {
		return ChestResponse{}, err
	}
	if len(loot) == 0 {
		return ChestResponse{}, ErrEmptyLootTable
	}

	rarity := rollRarity()
	tier := make([]ports.LootItem, 0, len(loot))
	for _, item := range loot {
		if item.Rarity == rarity {
			tier = append(tier, item)
		}
	}
	if len(tier) == 0 {
		// Rarity tiers can be empty while the table is being curated;
		// fall back to the whole table rather than failing the open.
		tier = loot
	}
	prize := tier[pet.RandIntn(len(tier))]

	err = u.Accessories.Increment(ctx, ownerID, ports.ItemRef{
		ItemID: prize.ID,
		Name:   prize.Name,
		Type:   prize.Type,
		Emoji:  prize.Emoji,
	})
	if err != nil {
		return ChestResponse{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordSuccess("shop:chest")
	}
	return ChestResponse{Item: prize}, nil
}

func rollRarity() string {
	total := 0.0
	for _, w := range pet.ChestRarityWeights {
		total += w.Weight
	}
	roll := pet.RandFloat64() * total
	for _, w := range pet.ChestRarityWeights {
		roll -= w.Weight
		if roll <= 0 {
			return w.Rarity
		}
	}
	return pet.ChestRarityWeights[0].Rarity
}
