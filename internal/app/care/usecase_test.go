package care

import (
	"context"
	"errors"
	"testing"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var careNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func carePet(mutate func(*pet.Pet)) pet.Pet {
	p := pet.NewPet("pet_1", "usr_1", "Mochi", pet.SpeciesCat, "", "tester", careNow.Add(-time.Hour))
	p.Vitals = pet.Vitals{Hunger: 50, Happiness: 50, Cleanliness: 50, Energy: 50, Thirst: 50}
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func newCareUseCase(p pet.Pet) (UseCase, *stubPetRepo, *stubNoticeRepo, *stubMetrics) {
	pets := &stubPetRepo{byID: map[string]pet.Pet{p.ID: p}}
	notices := &stubNoticeRepo{}
	metrics := &stubMetrics{}
	uc := UseCase{
		Pets:        pets,
		Activations: &stubActivationRepo{active: map[string]bool{p.ID: true}},
		Notices:     notices,
		Metrics:     metrics,
		Now:         func() time.Time { return careNow },
	}
	return uc, pets, notices, metrics
}

func TestFeedBoostsVitalsAndGrantsXP(t *testing.T) {
	uc, pets, _, metrics := newCareUseCase(carePet(func(p *pet.Pet) { p.Level = 2 }))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionFeed})
	if err != nil {
		t.Fatalf("feed error: %v", err)
	}
	if resp.XPAwarded != 20 {
		t.Fatalf("expected 20 xp for level 2 feed, got %d", resp.XPAwarded)
	}

	saved := pets.byID["pet_1"]
	if saved.Vitals.Hunger != 75 || saved.Vitals.Energy != 60 {
		t.Fatalf("unexpected vitals after feed: %+v", saved.Vitals)
	}
	if !saved.LastFed.Equal(careNow) {
		t.Fatalf("expected LastFed stamped, got %v", saved.LastFed)
	}
	if saved.Version != 2 {
		t.Fatalf("expected version bump to 2, got %d", saved.Version)
	}
	if len(metrics.successKinds) != 1 || metrics.successKinds[0] != "care:feed" {
		t.Fatalf("unexpected metrics: %+v", metrics.successKinds)
	}
}

func TestFeedAtFullHungerTriggersOverfedLock(t *testing.T) {
	uc, pets, _, _ := newCareUseCase(carePet(func(p *pet.Pet) { p.Vitals.Hunger = 100 }))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionFeed})
	if err != nil {
		t.Fatalf("feed error: %v", err)
	}
	if !resp.Overfed {
		t.Fatalf("expected overfed outcome")
	}

	saved := pets.byID["pet_1"]
	if saved.CurrentEvent != pet.EventOverfed {
		t.Fatalf("expected overfed event set, got %q", saved.CurrentEvent)
	}
	if saved.Vitals.Hunger != 100 || saved.XP != 0 {
		t.Fatalf("overfed must not feed or award xp: %+v", saved)
	}

	// Every care action is now locked out.
	for _, action := range []pet.CareAction{pet.ActionFeed, pet.ActionPlay, pet.ActionClean, pet.ActionWater, pet.ActionToy} {
		_, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: action})
		if !errors.Is(err, ErrPetSick) {
			t.Fatalf("action %s: expected ErrPetSick, got %v", action, err)
		}
	}
}

func TestCareActionsBlockedWhileSleeping(t *testing.T) {
	uc, _, _, _ := newCareUseCase(carePet(func(p *pet.Pet) {
		p.Sleeping = true
		p.SleepStartedAt = careNow.Add(-time.Minute)
		p.SleepEndsAt = careNow.Add(9 * time.Minute)
	}))

	for _, action := range []pet.CareAction{pet.ActionFeed, pet.ActionPlay, pet.ActionClean, pet.ActionWater} {
		_, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: action})
		if !errors.Is(err, ErrPetSleeping) {
			t.Fatalf("action %s: expected ErrPetSleeping, got %v", action, err)
		}
	}
}

func TestPlayRunawayWhenEnergyHitsZero(t *testing.T) {
	uc, pets, notices, _ := newCareUseCase(carePet(func(p *pet.Pet) { p.Vitals.Energy = 15 }))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionPlay})
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if !resp.RanAway {
		t.Fatalf("expected runaway outcome")
	}
	if _, ok := pets.byID["pet_1"]; ok {
		t.Fatalf("expected pet record deleted")
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeRanAway {
		t.Fatalf("expected ran_away notice, got %+v", notices.notices)
	}
}

func TestWaterClearsThirstyEventWithoutResettingFedTimer(t *testing.T) {
	lastFed := careNow.Add(-30 * time.Minute)
	uc, pets, notices, _ := newCareUseCase(carePet(func(p *pet.Pet) {
		p.CurrentEvent = pet.EventThirsty
		p.EventStartedAt = careNow.Add(-time.Minute)
		p.LastFed = lastFed
	}))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionWater})
	if err != nil {
		t.Fatalf("water error: %v", err)
	}
	if resp.EventCleared != pet.EventThirsty {
		t.Fatalf("expected thirsty cleared, got %q", resp.EventCleared)
	}

	saved := pets.byID["pet_1"]
	if saved.CurrentEvent != "" {
		t.Fatalf("expected event cleared, got %q", saved.CurrentEvent)
	}
	if saved.Vitals.Thirst != 80 {
		t.Fatalf("expected thirst 80, got %d", saved.Vitals.Thirst)
	}
	if !saved.LastFed.Equal(lastFed) {
		t.Fatalf("watering must not reset LastFed")
	}
	found := false
	for _, n := range notices.notices {
		if n.Kind == pet.NoticeRecovered {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected recovered notice, got %+v", notices.notices)
	}
}

func TestToyPlayRespectsDailyCap(t *testing.T) {
	uc, pets, _, _ := newCareUseCase(carePet(func(p *pet.Pet) {
		p.Accessories.Toy = "🎾"
		p.ToyPlayCount = 4
		p.LastToyPlayed = careNow.Add(-time.Hour)
	}))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if err != nil {
		t.Fatalf("toy error: %v", err)
	}
	if resp.ToyPlaysLeft != 0 {
		t.Fatalf("expected 0 plays left, got %d", resp.ToyPlaysLeft)
	}
	if pets.byID["pet_1"].ToyPlayCount != 5 {
		t.Fatalf("expected count 5, got %d", pets.byID["pet_1"].ToyPlayCount)
	}

	_, err = uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if !errors.Is(err, ErrToyWornOut) {
		t.Fatalf("expected ErrToyWornOut, got %v", err)
	}
}

func TestToyCountResetsOnNewDay(t *testing.T) {
	uc, pets, _, _ := newCareUseCase(carePet(func(p *pet.Pet) {
		p.Accessories.Toy = "🎾"
		p.ToyPlayCount = 5
		p.LastToyPlayed = careNow.AddDate(0, 0, -1)
	}))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if err != nil {
		t.Fatalf("toy error: %v", err)
	}
	if resp.ToyPlaysLeft != 4 {
		t.Fatalf("expected 4 plays left after reset, got %d", resp.ToyPlaysLeft)
	}
	if pets.byID["pet_1"].ToyPlayCount != 1 {
		t.Fatalf("expected count reset to 1, got %d", pets.byID["pet_1"].ToyPlayCount)
	}
}

func TestSleepMaskStartsSleep(t *testing.T) {
	uc, pets, _, _ := newCareUseCase(carePet(func(p *pet.Pet) {
		p.Accessories.Toy = pet.SleepMaskToy
	}))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if err != nil {
		t.Fatalf("toy error: %v", err)
	}
	if !resp.FellAsleep {
		t.Fatalf("expected sleep outcome")
	}

	saved := pets.byID["pet_1"]
	if !saved.Sleeping {
		t.Fatalf("expected sleeping pet")
	}
	if !saved.SleepEndsAt.Equal(careNow.Add(pet.SleepDuration)) {
		t.Fatalf("unexpected sleep window end: %v", saved.SleepEndsAt)
	}
	if saved.XP != 0 {
		t.Fatalf("sleep must not award xp, got %d", saved.XP)
	}

	_, err = uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if !errors.Is(err, ErrAlreadyAsleep) {
		t.Fatalf("expected ErrAlreadyAsleep, got %v", err)
	}
}

func TestToyWithoutEquippedToyFails(t *testing.T) {
	uc, _, _, _ := newCareUseCase(carePet(nil))

	_, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionToy})
	if !errors.Is(err, ErrNoToyEquipped) {
		t.Fatalf("expected ErrNoToyEquipped, got %v", err)
	}
}

func TestLevelUpPaysBonusCoinsAndNotice(t *testing.T) {
	uc, pets, notices, _ := newCareUseCase(carePet(func(p *pet.Pet) { p.XP = 90 }))

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionPlay})
	if err != nil {
		t.Fatalf("play error: %v", err)
	}
	if !resp.LeveledUp || resp.BonusCoins != 40 {
		t.Fatalf("expected level up with 40 bonus coins: %+v", resp)
	}

	saved := pets.byID["pet_1"]
	if saved.Level != 2 || saved.XP != 5 {
		t.Fatalf("expected level 2 xp 5, got level %d xp %d", saved.Level, saved.XP)
	}
	if saved.Coins != 55 {
		t.Fatalf("expected 55 coins (15 award + 40 bonus), got %d", saved.Coins)
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeLevelUp {
		t.Fatalf("expected level_up notice, got %+v", notices.notices)
	}
}

func TestCareForAnotherOwnersPetIsRejected(t *testing.T) {
	uc, _, _, _ := newCareUseCase(carePet(nil))

	_, err := uc.Execute(context.Background(), Request{OwnerID: "usr_2", PetID: "pet_1", Action: pet.ActionFeed})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestVersionConflictSurfacesAndCounts(t *testing.T) {
	p := carePet(nil)
	repo := &conflictOnSavePetRepo{stubPetRepo{byID: map[string]pet.Pet{p.ID: p}}}
	metrics := &stubMetrics{}
	uc := UseCase{
		Pets:    repo,
		Notices: &stubNoticeRepo{},
		Metrics: metrics,
		Now:     func() time.Time { return careNow },
	}

	_, err := uc.Execute(context.Background(), Request{OwnerID: "usr_1", PetID: "pet_1", Action: pet.ActionClean})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if metrics.conflictCalls != 1 {
		t.Fatalf("expected one conflict recorded, got %d", metrics.conflictCalls)
	}
}
