package care

import (
	"context"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

type stubPetRepo struct {
	byID    map[string]pet.Pet
	deleted []string
}

func (r *stubPetRepo) GetByID(_ context.Context, petID string) (pet.Pet, error) {
	p, ok := r.byID[petID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r *stubPetRepo) GetByIDs(_ context.Context, petIDs []string) ([]pet.Pet, error) {
	out := make([]pet.Pet, 0, len(petIDs))
	for _, id := range petIDs {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPetRepo) ListByOwnerCoinsDesc(_ context.Context, ownerID string) ([]pet.Pet, error) {
	var out []pet.Pet
	for _, p := range r.byID {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Coins > out[i].Coins {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubPetRepo) Create(_ context.Context, p pet.Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return ports.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *stubPetRepo) SaveWithVersion(_ context.Context, p pet.Pet, expectedVersion int64) error {
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

func (r *stubPetRepo) Delete(_ context.Context, petID string) error {
	if _, ok := r.byID[petID]; !ok {
		return ports.ErrNotFound
	}
	delete(r.byID, petID)
	r.deleted = append(r.deleted, petID)
	return nil
}

func (r *stubPetRepo) NicknameTaken(_ context.Context, nickname, exceptOwnerID string) (bool, error) {
	for _, p := range r.byID {
		if p.OwnerNickname == nickname && p.OwnerID != exceptOwnerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPetRepo) TransferOwner(_ context.Context, petID, newOwnerID string) error {
	p, ok := r.byID[petID]
	if !ok {
		return ports.ErrNotFound
	}
	p.OwnerID = newOwnerID
	r.byID[petID] = p
	return nil
}

type conflictOnSavePetRepo struct {
	stubPetRepo
}

func (r *conflictOnSavePetRepo) SaveWithVersion(_ context.Context, _ pet.Pet, _ int64) error {
	return ports.ErrConflict
}

type stubActivationRepo struct {
	active  map[string]bool
	deleted []string
}

func (r *stubActivationRepo) Create(_ context.Context, _, petID string, active bool) error {
	if r.active == nil {
		r.active = map[string]bool{}
	}
	r.active[petID] = active
	return nil
}

func (r *stubActivationRepo) SetActive(_ context.Context, _, petID string, active bool) error {
	if _, ok := r.active[petID]; !ok {
		return ports.ErrNotFound
	}
	r.active[petID] = active
	return nil
}

func (r *stubActivationRepo) DeactivateAll(_ context.Context, _ string) error {
	for id := range r.active {
		r.active[id] = false
	}
	return nil
}

func (r *stubActivationRepo) ListActivePetIDs(_ context.Context, _ string) ([]string, error) {
	var out []string
	for id, a := range r.active {
		if a {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *stubActivationRepo) ListAllActivePetIDs(ctx context.Context) ([]string, error) {
	return r.ListActivePetIDs(ctx, "")
}

func (r *stubActivationRepo) Delete(_ context.Context, petID string) error {
	delete(r.active, petID)
	r.deleted = append(r.deleted, petID)
	return nil
}

func (r *stubActivationRepo) TransferOwner(_ context.Context, _, _ string) error {
	return nil
}

type stubNoticeRepo struct {
	notices []pet.Notice
}

func (r *stubNoticeRepo) Append(_ context.Context, notices []pet.Notice) error {
	r.notices = append(r.notices, notices...)
	return nil
}

func (r *stubNoticeRepo) ListByOwner(_ context.Context, ownerID string, limit int) ([]pet.Notice, error) {
	var out []pet.Notice
	for _, n := range r.notices {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubMetrics struct {
	successKinds  []string
	conflictCalls int
	failureCalls  int
	tickTasks     []string
}

func (m *stubMetrics) RecordSuccess(kind string) { m.successKinds = append(m.successKinds, kind) }
func (m *stubMetrics) RecordConflict()           { m.conflictCalls++ }
func (m *stubMetrics) RecordFailure()            { m.failureCalls++ }
func (m *stubMetrics) RecordTick(task string)    { m.tickTasks = append(m.tickTasks, task) }
