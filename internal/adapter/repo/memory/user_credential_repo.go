package memory

import (
	"context"

	"critterkeep/internal/app/ports"
)

type UserCredentialRepo struct {
	store *Store
}

func NewUserCredentialRepo(store *Store) UserCredentialRepo {
	return UserCredentialRepo{store: store}
}

func (r UserCredentialRepo) Create(ctx context.Context, credential ports.UserCredentialRecord) error {
	defer r.store.lock(ctx)()
	if _, exists := r.store.credentials[credential.UserID]; exists {
		return ports.ErrConflict
	}
	r.store.credentials[credential.UserID] = credential
	return nil
}

func (r UserCredentialRepo) GetByUserID(ctx context.Context, userID string) (ports.UserCredentialRecord, error) {
	defer r.store.lock(ctx)()
	credential, ok := r.store.credentials[userID]
	if !ok {
		return ports.UserCredentialRecord{}, ports.ErrNotFound
	}
	return credential, nil
}
