package memory

import "context"

// TxManager runs fn directly. The store serializes each call with its own lock
// and has nothing to roll back.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
