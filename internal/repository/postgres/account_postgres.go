package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
)

const (
	listAccountsDescSQL = `SELECT account_id, username, email, status, created_at, updated_at
		 FROM accounts
		 ORDER BY account_id DESC
		 LIMIT $1 OFFSET $2`

	countAccountsSQL = `SELECT COUNT(*) FROM accounts`
)

type accountRepository struct{ pool *pgxpool.Pool }

func NewAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) ListDesc(ctx context.Context, p repository.Page) ([]model.Account, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, listAccountsDescSQL, limit, offset)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Account, error) {
		var a model.Account
		err := row.Scan(&a.AccountID, &a.Username, &a.Email, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	})
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

// Count is a separate statement from ListDesc. Without an ambient transaction
// the two may observe different snapshots.
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var total int64
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, countAccountsSQL).Scan(&total); err != nil {
		return 0, repository.MapPgError(err)
	}
	return total, nil
}

var _ repository.AccountRepository = (*accountRepository)(nil)
