package repository

import (
	"context"

	"github.com/maxviazov/accounts-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Implementations run fn inside a read-only snapshot: every query issued
// through ctx sees the same committed state.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// AccountRepository is the read side of the accounts table.
type AccountRepository interface {
	// ListDesc returns accounts ordered by account_id descending, skipping
	// p.Offset rows and returning at most p.Limit rows.
	ListDesc(ctx context.Context, p Page) ([]model.Account, error)
	// Count returns the size of the whole population, independent of any page.
	Count(ctx context.Context) (int64, error)
}
