package lifecycle

import (
	"context"
	"testing"
	"time"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

var tickNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakePetRepo struct {
	ports.PetRepository
	byID    map[string]pet.Pet
	deleted []string
}

func (r *fakePetRepo) GetByIDs(_ context.Context, petIDs []string) ([]pet.Pet, error) {
	out := make([]pet.Pet, 0, len(petIDs))
	for _, id := range petIDs {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePetRepo) SaveWithVersion(_ context.Context, p pet.Pet, expectedVersion int64) error {
	current, ok := r.byID[p.ID]
	if !ok {
		return ports.ErrNotFound
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakePetRepo) Delete(_ context.Context, petID string) error {
	delete(r.byID, petID)
	r.deleted = append(r.deleted, petID)
	return nil
}

type fakeActivationRepo struct {
	ports.ActivationRepository
	activeIDs []string
	deleted   []string
}

func (r *fakeActivationRepo) ListAllActivePetIDs(_ context.Context) ([]string, error) {
	return r.activeIDs, nil
}

func (r *fakeActivationRepo) Delete(_ context.Context, petID string) error {
	r.deleted = append(r.deleted, petID)
	return nil
}

type fakeNoticeRepo struct {
	notices []pet.Notice
}

func (r *fakeNoticeRepo) Append(_ context.Context, notices []pet.Notice) error {
	r.notices = append(r.notices, notices...)
	return nil
}

func (r *fakeNoticeRepo) ListByOwner(_ context.Context, _ string, _ int) ([]pet.Notice, error) {
	return r.notices, nil
}

type fakeMetrics struct {
	conflictCalls int
	failureCalls  int
	ticks         []string
}

func (m *fakeMetrics) RecordSuccess(string)   {}
func (m *fakeMetrics) RecordConflict()        { m.conflictCalls++ }
func (m *fakeMetrics) RecordFailure()         { m.failureCalls++ }
func (m *fakeMetrics) RecordTick(task string) { m.ticks = append(m.ticks, task) }

func tickPet(id string, mutate func(*pet.Pet)) pet.Pet {
	p := pet.NewPet(id, "usr_1", "Pal-"+id, pet.SpeciesCat, "", "tester", tickNow.Add(-time.Hour))
	p.Vitals = pet.Vitals{Hunger: 50, Happiness: 50, Cleanliness: 50, Energy: 50, Thirst: 50}
	p.LastFed = tickNow
	p.LastPlayed = tickNow
	p.LastCleaned = tickNow
	if mutate != nil {
		mutate(&p)
	}
	return p
}

func newLifecycleUseCase(pets ...pet.Pet) (UseCase, *fakePetRepo, *fakeActivationRepo, *fakeNoticeRepo, *fakeMetrics) {
	repo := &fakePetRepo{byID: map[string]pet.Pet{}}
	activations := &fakeActivationRepo{}
	for _, p := range pets {
		repo.byID[p.ID] = p
		activations.activeIDs = append(activations.activeIDs, p.ID)
	}
	notices := &fakeNoticeRepo{}
	metrics := &fakeMetrics{}
	uc := UseCase{
		Pets:        repo,
		Activations: activations,
		Notices:     notices,
		Metrics:     metrics,
		Now:         func() time.Time { return tickNow },
	}
	return uc, repo, activations, notices, metrics
}

func TestDecayTickDeletesStarvedPet(t *testing.T) {
	// Hunger 2 with 10 minutes since feeding decays by 5 and bottoms out.
	p := tickPet("p1", func(p *pet.Pet) {
		p.Vitals.Hunger = 2
		p.LastFed = tickNow.Add(-10 * time.Minute)
	})
	uc, repo, activations, notices, _ := newLifecycleUseCase(p)

	if err := uc.DecayTick(context.Background()); err != nil {
		t.Fatalf("decay tick error: %v", err)
	}
	if _, ok := repo.byID["p1"]; ok {
		t.Fatalf("expected starved pet deleted")
	}
	if len(activations.deleted) != 1 || activations.deleted[0] != "p1" {
		t.Fatalf("expected activation row removed, got %+v", activations.deleted)
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeRanAway {
		t.Fatalf("expected ran_away notice, got %+v", notices.notices)
	}
}

func TestDecayTickWakesSleeperAtFullEnergy(t *testing.T) {
	p := tickPet("p1", func(p *pet.Pet) {
		p.Sleeping = true
		p.Vitals.Energy = 40
		p.SleepStartedAt = tickNow.Add(-11 * time.Minute)
		p.SleepEndsAt = tickNow.Add(-time.Minute)
	})
	uc, repo, _, notices, _ := newLifecycleUseCase(p)

	if err := uc.DecayTick(context.Background()); err != nil {
		t.Fatalf("decay tick error: %v", err)
	}

	saved := repo.byID["p1"]
	if saved.Sleeping || saved.Vitals.Energy != 100 {
		t.Fatalf("expected awake at full energy, got %+v", saved)
	}
	if saved.Version != 2 {
		t.Fatalf("expected version bump, got %d", saved.Version)
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeWokeUp {
		t.Fatalf("expected woke_up notice, got %+v", notices.notices)
	}
}

func TestDecayTickSkipsUntouchedPets(t *testing.T) {
	p := tickPet("p1", nil)
	uc, repo, _, _, _ := newLifecycleUseCase(p)

	if err := uc.DecayTick(context.Background()); err != nil {
		t.Fatalf("decay tick error: %v", err)
	}
	if repo.byID["p1"].Version != 1 {
		t.Fatalf("no-op decay must not write, version=%d", repo.byID["p1"].Version)
	}
}

func TestEventTickAfflictsPetUnderSeededRoll(t *testing.T) {
	origFloat, origIntn := pet.RandFloat64, pet.RandIntn
	defer func() { pet.RandFloat64, pet.RandIntn = origFloat, origIntn }()
	pet.RandFloat64 = func() float64 { return 0.1 }
	pet.RandIntn = func(n int) int { return 0 } // sick

	p := tickPet("p1", nil)
	withEvent := tickPet("p2", func(p *pet.Pet) {
		p.CurrentEvent = pet.EventTired
		p.EventStartedAt = tickNow.Add(-time.Minute)
	})
	uc, repo, _, notices, _ := newLifecycleUseCase(p, withEvent)

	if err := uc.EventTick(context.Background()); err != nil {
		t.Fatalf("event tick error: %v", err)
	}

	struck := repo.byID["p1"]
	if struck.CurrentEvent != pet.EventSick {
		t.Fatalf("expected sick event, got %q", struck.CurrentEvent)
	}
	// Sick: energy -20, happiness -15, floored at 0.
	if struck.Vitals.Energy != 30 || struck.Vitals.Happiness != 35 {
		t.Fatalf("unexpected vitals after event: %+v", struck.Vitals)
	}
	if repo.byID["p2"].CurrentEvent != pet.EventTired {
		t.Fatalf("a pet with an active event must not be re-afflicted")
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeEventBegan {
		t.Fatalf("expected event_began notice, got %+v", notices.notices)
	}
}

func TestEventEffectsNeverDeleteThePet(t *testing.T) {
	origFloat, origIntn := pet.RandFloat64, pet.RandIntn
	defer func() { pet.RandFloat64, pet.RandIntn = origFloat, origIntn }()
	pet.RandFloat64 = func() float64 { return 0.1 }
	pet.RandIntn = func(n int) int { return 0 } // sick: energy -20

	p := tickPet("p1", func(p *pet.Pet) { p.Vitals.Energy = 5 })
	uc, repo, _, _, _ := newLifecycleUseCase(p)

	if err := uc.EventTick(context.Background()); err != nil {
		t.Fatalf("event tick error: %v", err)
	}
	saved, ok := repo.byID["p1"]
	if !ok {
		t.Fatalf("event effects must not delete the pet")
	}
	if saved.Vitals.Energy != 0 {
		t.Fatalf("expected energy floored at 0, got %d", saved.Vitals.Energy)
	}
}

func TestMutationTickRerollsCrownedSpecies(t *testing.T) {
	origFloat, origIntn := pet.RandFloat64, pet.RandIntn
	defer func() { pet.RandFloat64, pet.RandIntn = origFloat, origIntn }()
	pet.RandFloat64 = func() float64 { return 0.2 }
	pet.RandIntn = func(n int) int { return 3 }

	crowned := tickPet("p1", func(p *pet.Pet) {
		p.Accessories.Hat = pet.CrownHat
		p.LastMutationCheck = tickNow.Add(-25 * time.Minute)
	})
	bare := tickPet("p2", func(p *pet.Pet) {
		p.LastMutationCheck = tickNow.Add(-25 * time.Minute)
	})
	uc, repo, _, notices, _ := newLifecycleUseCase(crowned, bare)

	if err := uc.MutationTick(context.Background()); err != nil {
		t.Fatalf("mutation tick error: %v", err)
	}

	mutated := repo.byID["p1"]
	if mutated.Species != pet.MutationSpecies[3] {
		t.Fatalf("expected species reroll, got %s", mutated.Species)
	}
	if !mutated.LastMutationCheck.Equal(tickNow) {
		t.Fatalf("expected mutation gate advanced")
	}
	if repo.byID["p2"].Species != pet.SpeciesCat {
		t.Fatalf("uncrowned pet must not mutate")
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeMutated {
		t.Fatalf("expected mutated notice, got %+v", notices.notices)
	}
}

func TestMutationFailedRollStillAdvancesGate(t *testing.T) {
	origFloat := pet.RandFloat64
	defer func() { pet.RandFloat64 = origFloat }()
	pet.RandFloat64 = func() float64 { return 0.9 }

	crowned := tickPet("p1", func(p *pet.Pet) {
		p.Accessories.Hat = pet.CrownHat
		p.LastMutationCheck = tickNow.Add(-25 * time.Minute)
	})
	uc, repo, _, notices, _ := newLifecycleUseCase(crowned)

	if err := uc.MutationTick(context.Background()); err != nil {
		t.Fatalf("mutation tick error: %v", err)
	}

	saved := repo.byID["p1"]
	if saved.Species != pet.SpeciesCat {
		t.Fatalf("failed roll must not mutate")
	}
	if !saved.LastMutationCheck.Equal(tickNow) {
		t.Fatalf("failed roll must still advance the gate")
	}
	if len(notices.notices) != 0 {
		t.Fatalf("no notice on a failed roll")
	}
}

func TestDragonTickBuffsOwnersOtherPets(t *testing.T) {
	dragon := tickPet("d1", func(p *pet.Pet) { p.Species = pet.SpeciesDragon })
	buddy := tickPet("p1", func(p *pet.Pet) { p.XP = 80 })
	stranger := tickPet("p2", func(p *pet.Pet) { p.OwnerID = "usr_2" })
	uc, repo, _, notices, _ := newLifecycleUseCase(dragon, buddy, stranger)

	if err := uc.DragonTick(context.Background()); err != nil {
		t.Fatalf("dragon tick error: %v", err)
	}

	buffed := repo.byID["p1"]
	if buffed.XP != 130 {
		t.Fatalf("expected 130 xp, got %d", buffed.XP)
	}
	// Flat bonus curve: floor(130/100)+1.
	if buffed.Level != 2 {
		t.Fatalf("expected level 2, got %d", buffed.Level)
	}
	if repo.byID["d1"].XP != 0 {
		t.Fatalf("the dragon itself gets no buff")
	}
	if repo.byID["p2"].XP != 0 {
		t.Fatalf("another owner's pet gets no buff")
	}
	if len(notices.notices) != 1 || notices.notices[0].Kind != pet.NoticeDragonBuff {
		t.Fatalf("expected dragon_buff notice, got %+v", notices.notices)
	}
}

func TestTickToleratesVersionConflicts(t *testing.T) {
	p := tickPet("p1", func(p *pet.Pet) {
		p.Vitals.Hunger = 50
		p.LastFed = tickNow.Add(-10 * time.Minute)
	})
	repo := &fakePetRepo{byID: map[string]pet.Pet{"p1": p}}
	activations := &fakeActivationRepo{activeIDs: []string{"p1"}}
	metrics := &fakeMetrics{}
	uc := UseCase{
		Pets:        &conflictPetRepo{fakePetRepo: repo},
		Activations: activations,
		Notices:     &fakeNoticeRepo{},
		Metrics:     metrics,
		Now:         func() time.Time { return tickNow },
	}

	if err := uc.DecayTick(context.Background()); err != nil {
		t.Fatalf("a conflicting pet must not fail the tick: %v", err)
	}
	if metrics.conflictCalls != 1 {
		t.Fatalf("expected one conflict recorded, got %d", metrics.conflictCalls)
	}
	if metrics.failureCalls != 0 {
		t.Fatalf("conflicts are not failures")
	}
}

type conflictPetRepo struct {
	*fakePetRepo
}

func (r *conflictPetRepo) SaveWithVersion(_ context.Context, _ pet.Pet, _ int64) error {
	return ports.ErrConflict
}
