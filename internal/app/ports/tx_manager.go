package ports

import "context"

// TxManager runs fn inside one storage transaction so multi-row economy
// mutations (adoption payment, trade settlement) either all land or none do.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
