package notify

import (
	"context"

	"critterkeep/internal/app/ports"
	"critterkeep/internal/domain/pet"
)

// PublishingNoticeRepo persists notices through the wrapped repository and
// then pushes them to the owner's live connections. A publish failure never
// fails the write.
type PublishingNoticeRepo struct {
	Inner ports.NoticeRepository
	Hub   *Hub
}

func (r PublishingNoticeRepo) Append(ctx context.Context, notices []pet.Notice) error {
	if err := r.Inner.Append(ctx, notices); err != nil {
		return err
	}
	if r.Hub != nil {
		byOwner := map[string][]pet.Notice{}
		for _, n := range notices {
			byOwner[n.OwnerID] = append(byOwner[n.OwnerID], n)
		}
		for ownerID, batch := range byOwner {
			r.Hub.Publish(ownerID, batch)
		}
	}
	return nil
}

func (r PublishingNoticeRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]pet.Notice, error) {
	return r.Inner.ListByOwner(ctx, ownerID, limit)
}
