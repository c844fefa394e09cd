package sqlcrepo

import (
	"context"

	"shipzone-backend/db/sqlc"
	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionManager implements domain.TransactionManager using pgx
type TransactionManager struct {
	db *pgxpool.Pool
}

func NewTransactionManager(db *pgxpool.Pool) domain.TransactionManager {
	return &TransactionManager{db: db}
}

// Do joins an outer transaction when ctx already carries one.
func (tm *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := tm.db.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.WithContext(ctx).Error().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	return tx.Commit(ctx)
}

type txKey struct{}

// GetQueriesFromContext returns queries bound to the context transaction if there is one
func GetQueriesFromContext(ctx context.Context, defaultQueries *sqlc.Queries) *sqlc.Queries {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return defaultQueries.WithTx(tx)
	}
	return defaultQueries
}
