package trading

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
	"critterkeep/internal/domain/trade"
)

var tradeNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTradeRepo struct {
	byID  map[string]trade.Request
	items map[string][]trade.Item
}

func (r *fakeTradeRepo) Create(_ context.Context, req trade.Request, items []trade.Item) error {
	if r.byID == nil {
		r.byID = map[string]trade.Request{}
		r.items = map[string][]trade.Item{}
	}
	r.byID[req.ID] = req
	r.items[req.ID] = items
	return nil
}

func (r *fakeTradeRepo) GetByID(_ context.Context, tradeID string) (trade.Request, error) {
	t, ok := r.byID[tradeID]
	if !ok {
		return trade.Request{}, ports.ErrNotFound
	}
	return t, nil
}

func (r *fakeTradeRepo) ListItems(_ context.Context, tradeID string) ([]trade.Item, error) {
	return r.items[tradeID], nil
}

func (r *fakeTradeRepo) ListPendingByRecipient(_ context.Context, recipientID string) ([]trade.Request, error) {
	var out []trade.Request
	for _, t := range r.byID {
		if t.RecipientID == recipientID && t.Status == trade.StatusPending {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) SetStatus(_ context.Context, tradeID string, status trade.Status, updatedAt time.Time) error {
	t, ok := r.byID[tradeID]
	if !ok {
		return ports.ErrNotFound
	}
	if t.Status != trade.StatusPending {
		return ports.ErrConflict
	}
	t.Status = status
	t.UpdatedAt = updatedAt
	r.byID[tradeID] = t
	return nil
}

type fakePetRepo struct {
	ports.PetRepository
	byID map[string]pet.Pet
}

func (r *fakePetRepo) GetByID(_ context.Context, petID string) (pet.Pet, error) {
	p, ok := r.byID[petID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *fakePetRepo) TransferOwner(_ context.Context, petID, newOwnerID string) error {
	p, ok := r.byID[petID]
	if !ok {
		return ports.ErrNotFound
	}
	p.OwnerID = newOwnerID
	r.byID[petID] = p
	return nil
}

type fakeActivationRepo struct {
	ports.ActivationRepository
	owners map[string]string
}

func (r *fakeActivationRepo) TransferOwner(_ context.Context, petID, newOwnerID string) error {
	if r.owners == nil {
		r.owners = map[string]string{}
	}
	r.owners[petID] = newOwnerID
	return nil
}

type fakeAccessoryRepo struct {
	stacks map[string]ports.AccessoryStack
}

func key(ownerID, itemID string) string { return ownerID + "|" + itemID }

func (r *fakeAccessoryRepo) Get(_ context.Context, ownerID, itemID string) (ports.AccessoryStack, error) {
	s, ok := r.stacks[key(ownerID, itemID)]
	if !ok {
		return ports.AccessoryStack{}, ports.ErrNotFound
	}
	return s, nil
}

func (r *fakeAccessoryRepo) ListByOwner(_ context.Context, ownerID string) ([]ports.AccessoryStack, error) {
	var out []ports.AccessoryStack
	for _, s := range r.stacks {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeAccessoryRepo) Increment(_ context.Context, ownerID string, ref ports.ItemRef) error {
	k := key(ownerID, ref.ItemID)
	s, ok := r.stacks[k]
	if !ok {
		r.stacks[k] = ports.AccessoryStack{
			ID: k, OwnerID: ownerID, ItemID: ref.ItemID,
			Name: ref.Name, Type: ref.Type, Emoji: ref.Emoji, Quantity: 1,
		}
		return nil
	}
	s.Quantity++
	r.stacks[k] = s
	return nil
}

func (r *fakeAccessoryRepo) Decrement(_ context.Context, ownerID, itemID string) error {
	k := key(ownerID, itemID)
	s, ok := r.stacks[k]
	if !ok {
		return ports.ErrNotFound
	}
	if s.Quantity > 0 {
		s.Quantity--
	}
	r.stacks[k] = s
	return nil
}

func (r *fakeAccessoryRepo) Take(_ context.Context, ownerID, itemID string) error {
	k := key(ownerID, itemID)
	s, ok := r.stacks[k]
	if !ok || s.Quantity == 0 {
		return ports.ErrNotFound
	}
	s.Quantity--
	if s.Quantity == 0 {
		delete(r.stacks, k)
		return nil
	}
	r.stacks[k] = s
	return nil
}

type fakeHouseRepo struct {
	ports.HouseItemRepository
	transfers []string
}

func (r *fakeHouseRepo) TransferOwner(_ context.Context, itemID, fromOwnerID, toOwnerID string) error {
	r.transfers = append(r.transfers, itemID+":"+fromOwnerID+">"+toOwnerID)
	return nil
}

func tradePet(id, owner string) pet.Pet {
	return pet.NewPet(id, owner, "Pal-"+id, pet.SpeciesCat, "", "", tradeNow.Add(-time.Hour))
}

func newTradingUseCase() (UseCase, *fakeTradeRepo, *fakePetRepo, *fakeAccessoryRepo, *fakeHouseRepo) {
	trades := &fakeTradeRepo{}
	pets := &fakePetRepo{byID: map[string]pet.Pet{
		"pet_s": tradePet("pet_s", "usr_sender"),
		"pet_r": tradePet("pet_r", "usr_recipient"),
	}}
	accessories := &fakeAccessoryRepo{stacks: map[string]ports.AccessoryStack{}}
	house := &fakeHouseRepo{}
	n := 0
	uc := UseCase{
		Trades:      trades,
		Pets:        pets,
		Activations: &fakeActivationRepo{},
		Accessories: accessories,
		HouseItems:  house,
		Tx:          fakeTxManager{},
		Now:         func() time.Time { return tradeNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id_%d", n)
		},
	}
	return uc, trades, pets, accessories, house
}

func TestCreateTradeValidatesPetOwnership(t *testing.T) {
	uc, _, _, _, _ := newTradingUseCase()

	_, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items: []OfferedItem{
			{Kind: trade.KindPet, ItemID: "pet_r", SenderOffering: true},
		},
	})
	if !errors.Is(err, ErrItemNotOwned) {
		t.Fatalf("expected ErrItemNotOwned, got %v", err)
	}
}

func TestCreateTradeRejectsSelfTrade(t *testing.T) {
	uc, _, _, _, _ := newTradingUseCase()

	_, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_sender",
		Items:       []OfferedItem{{Kind: trade.KindHat, ItemID: "hat_1"}},
	})
	if !errors.Is(err, ErrSelfTrade) {
		t.Fatalf("expected ErrSelfTrade, got %v", err)
	}
}

func TestAcceptSwapsPetsBothWays(t *testing.T) {
	uc, trades, pets, _, _ := newTradingUseCase()

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items: []OfferedItem{
			{Kind: trade.KindPet, ItemID: "pet_s", SenderOffering: true},
			{Kind: trade.KindPet, ItemID: "pet_r", SenderOffering: false},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("accept error: %v", err)
	}

	if pets.byID["pet_s"].OwnerID != "usr_recipient" {
		t.Fatalf("sender pet should move to recipient, owner=%s", pets.byID["pet_s"].OwnerID)
	}
	if pets.byID["pet_r"].OwnerID != "usr_sender" {
		t.Fatalf("recipient pet should move to sender, owner=%s", pets.byID["pet_r"].OwnerID)
	}
	if trades.byID[view.Trade.ID].Status != trade.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", trades.byID[view.Trade.ID].Status)
	}
}

func TestAcceptMovesAccessoryStackUnits(t *testing.T) {
	uc, _, _, accessories, _ := newTradingUseCase()
	accessories.stacks[key("usr_sender", "hat_1")] = ports.AccessoryStack{
		ID: "s1", OwnerID: "usr_sender", ItemID: "hat_1",
		Name: "Top Hat", Type: "hat", Emoji: "🎩", Quantity: 2,
	}

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items: []OfferedItem{
			{Kind: trade.KindHat, ItemID: "hat_1", ItemName: "Top Hat", ItemEmoji: "🎩", SenderOffering: true},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("accept error: %v", err)
	}

	if got := accessories.stacks[key("usr_sender", "hat_1")].Quantity; got != 1 {
		t.Fatalf("expected sender stack at 1, got %d", got)
	}
	if got := accessories.stacks[key("usr_recipient", "hat_1")].Quantity; got != 1 {
		t.Fatalf("expected recipient stack at 1, got %d", got)
	}
}

func TestAcceptSkipsMissingAccessoryStack(t *testing.T) {
	uc, trades, _, accessories, _ := newTradingUseCase()

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items: []OfferedItem{
			{Kind: trade.KindToy, ItemID: "toy_1", SenderOffering: true},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("accept error: %v", err)
	}

	if len(accessories.stacks) != 0 {
		t.Fatalf("nothing should be created for a missing stack: %+v", accessories.stacks)
	}
	if trades.byID[view.Trade.ID].Status != trade.StatusAccepted {
		t.Fatalf("trade should still settle")
	}
}

func TestAcceptRejectedForNonRecipientAndNonPending(t *testing.T) {
	uc, _, _, _, _ := newTradingUseCase()

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items:       []OfferedItem{{Kind: trade.KindHat, ItemID: "hat_1", SenderOffering: true}},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := uc.Accept(context.Background(), "usr_sender", view.Trade.ID); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient, got %v", err)
	}

	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("accept error: %v", err)
	}
	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("re-accept must fail with ErrNotPending, got %v", err)
	}
}

func TestRejectAndCancelGuardRoles(t *testing.T) {
	uc, trades, _, _, _ := newTradingUseCase()

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items:       []OfferedItem{{Kind: trade.KindHat, ItemID: "hat_1", SenderOffering: true}},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if err := uc.Cancel(context.Background(), "usr_recipient", view.Trade.ID); !errors.Is(err, ErrNotSender) {
		t.Fatalf("expected ErrNotSender, got %v", err)
	}
	if err := uc.Reject(context.Background(), "usr_sender", view.Trade.ID); !errors.Is(err, ErrNotRecipient) {
		t.Fatalf("expected ErrNotRecipient, got %v", err)
	}
	if err := uc.Reject(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if trades.byID[view.Trade.ID].Status != trade.StatusRejected {
		t.Fatalf("expected rejected status")
	}
}

func TestHouseItemTransfersByIdentity(t *testing.T) {
	uc, _, _, _, house := newTradingUseCase()

	view, err := uc.Create(context.Background(), CreateRequest{
		SenderID:    "usr_sender",
		RecipientID: "usr_recipient",
		Items: []OfferedItem{
			{Kind: trade.KindFurniture, ItemID: "sofa_1", SenderOffering: true},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := uc.Accept(context.Background(), "usr_recipient", view.Trade.ID); err != nil {
		t.Fatalf("accept error: %v", err)
	}
	if len(house.transfers) != 1 || house.transfers[0] != "sofa_1:usr_sender>usr_recipient" {
		t.Fatalf("unexpected house transfers: %+v", house.transfers)
	}
}
