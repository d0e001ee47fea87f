package memory

import "context"

// TxManager holds the store lock for the whole transaction and marks the
// context so repo calls inside fn don't relock. No rollback: partial writes
// from a failed fn stay, which is acceptable for the dev-mode store.
type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(withTx(ctx))
}
