// Package memory is an in-process AccountRepository. It backs unit tests and
// local runs without a database; it is not meant for production traffic.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts []model.Account // sorted by AccountID descending
	err      error
}

func NewAccountRepository(seed ...model.Account) *AccountRepository {
	r := &AccountRepository{}
	r.Put(seed...)
	return r
}

// Put inserts or replaces accounts by AccountID.
func (r *AccountRepository) Put(accounts ...model.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range accounts {
		i := sort.Search(len(r.accounts), func(i int) bool { return r.accounts[i].AccountID <= a.AccountID })
		if i < len(r.accounts) && r.accounts[i].AccountID == a.AccountID {
			r.accounts[i] = a
			continue
		}
		r.accounts = append(r.accounts, model.Account{})
		copy(r.accounts[i+1:], r.accounts[i:])
		r.accounts[i] = a
	}
}

// Delete removes an account; missing ids are ignored.
func (r *AccountRepository) Delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := sort.Search(len(r.accounts), func(i int) bool { return r.accounts[i].AccountID <= id })
	if i < len(r.accounts) && r.accounts[i].AccountID == id {
		r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
	}
}

// FailWith makes every subsequent call return err; nil restores normal behaviour.
func (r *AccountRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *AccountRepository) ListDesc(ctx context.Context, p repository.Page) ([]model.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	if p.Limit <= 0 || p.Offset < 0 {
		return []model.Account{}, nil
	}
	from, to := p.Window(len(r.accounts))
	out := make([]model.Account, to-from)
	copy(out, r.accounts[from:to])
	return out, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.accounts)), nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
