package memory

import (
	"context"

	"critterkeep/internal/domain/pet"
)

type NoticeRepo struct {
	store *Store
}

func NewNoticeRepo(store *Store) NoticeRepo {
	return NoticeRepo{store: store}
}

func (r NoticeRepo) Append(ctx context.Context, notices []pet.Notice) error {
	defer r.store.lock(ctx)()
	for _, n := range notices {
		r.store.notices[n.OwnerID] = append(r.store.notices[n.OwnerID], n)
	}
	return nil
}

func (r NoticeRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]pet.Notice, error) {
	defer r.store.lock(ctx)()
	all := r.store.notices[ownerID]
	// Newest first.
	out := make([]pet.Notice, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
