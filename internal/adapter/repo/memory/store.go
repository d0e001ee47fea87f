// Package memory backs the repositories with in-process maps, used when no
// database DSN is configured and by tests. Every repo method takes the store
// lock for its own duration; TxManager holds it across a whole transaction
// and marks the context so nested repo calls don't relock, mirroring how the
// postgres adapter threads its transaction handle through the context.
package memory

import (
	"context"
	"sync"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
	"critterkeep/internal/domain/trade"
)

type activation struct {
	OwnerID string
	Active  bool
}

type txKey struct{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

type Store struct {
	mu          sync.Mutex
	pets        map[string]pet.Pet
	activations map[string]activation
	accessories map[string]ports.AccessoryStack
	house       map[string]ports.HouseItem
	shopItems   []ports.ShopItem
	lootItems   []ports.LootItem
	trades      map[string]trade.Request
	tradeItems  map[string][]trade.Item
	notices     map[string][]pet.Notice
	credentials map[string]ports.UserCredentialRecord
}

func NewStore() *Store {
	return &Store{
		pets:        make(map[string]pet.Pet),
		activations: make(map[string]activation),
		accessories: make(map[string]ports.AccessoryStack),
		house:       make(map[string]ports.HouseItem),
		trades:      make(map[string]trade.Request),
		tradeItems:  make(map[string][]trade.Item),
		notices:     make(map[string][]pet.Notice),
		credentials: make(map[string]ports.UserCredentialRecord),
	}
}

// lock acquires the store lock unless a transaction already holds it.
// Callers defer the returned unlock: defer s.lock(ctx)().
func (s *Store) lock(ctx context.Context) func() {
	if held, _ := ctx.Value(txKey{}).(bool); held {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func stackKey(ownerID, itemID string) string {
	return ownerID + "::" + itemID
}

// SeedCatalog loads the shop and loot tables. Without it the store serves
// an empty shop.
func (s *Store) SeedCatalog(items []ports.ShopItem, loot []ports.LootItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shopItems = append([]ports.ShopItem(nil), items...)
	s.lootItems = append([]ports.LootItem(nil), loot...)
}

func (s *Store) SeedPet(p pet.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets[p.ID] = p
}
