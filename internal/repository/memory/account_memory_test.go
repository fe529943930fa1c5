package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
	"github.com/maxviazov/accounts-service/internal/repository/contract"
	"github.com/maxviazov/accounts-service/internal/repository/memory"
)

func TestMemoryAccountRepository_Contract(t *testing.T) {
	contract.RunAccountRepositoryContract(t, func(t *testing.T) (repository.AccountRepository, contract.SeedFunc, func()) {
		repo := memory.NewAccountRepository()
		seed := func(_ context.Context, accounts ...model.Account) error {
			repo.Put(accounts...)
			return nil
		}
		return repo, seed, func() {}
	})
}

func TestMemoryAccountRepository_PutReplacesAndDeletes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(
		model.Account{AccountID: 2, Username: "b"},
		model.Account{AccountID: 1, Username: "a"},
	)
	repo.Put(model.Account{AccountID: 2, Username: "b2"}, model.Account{AccountID: 3, Username: "c"})
	repo.Delete(1)
	repo.Delete(42)

	got, err := repo.ListDesc(ctx, repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].AccountID)
	assert.Equal(t, "b2", got[1].Username)
}

func TestMemoryAccountRepository_FailWith(t *testing.T) {
	boom := errors.New("boom")
	repo := memory.NewAccountRepository(model.Account{AccountID: 1})
	repo.FailWith(boom)

	_, err := repo.ListDesc(context.Background(), repository.Page{Limit: 1})
	assert.ErrorIs(t, err, boom)
	_, err = repo.Count(context.Background())
	assert.ErrorIs(t, err, boom)

	repo.FailWith(nil)
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryAccountRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewAccountRepository().Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
