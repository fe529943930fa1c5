package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
)

// SeedFunc inserts accounts with the given ids directly into the backing store.
type SeedFunc func(ctx context.Context, accounts ...model.Account) error

type AccountFactory func(t *testing.T) (repo repository.AccountRepository, seed SeedFunc, cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, repo repository.AccountRepository, seed SeedFunc, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// Accounts builds accounts with the given ids and deterministic other fields.
func Accounts(ids ...int64) []model.Account {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Account{
			AccountID: id,
			Username:  fmt.Sprintf("user-%d", id),
			Email:     fmt.Sprintf("user-%d@example.com", id),
			Status:    "active",
			CreatedAt: base.Add(time.Duration(id) * time.Minute),
			UpdatedAt: base.Add(time.Duration(id) * time.Minute),
		})
	}
	return out
}

func ids(accounts []model.Account) []int64 {
	out := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.AccountID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func RunAccountRepositoryContract(t *testing.T, makeRepo AccountFactory) {
	t.Helper()

	t.Run("empty_store", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		list, err := repo.ListDesc(ctx, repository.Page{Limit: 1000})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %d", len(list))
		}
		total, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if total != 0 {
			t.Fatalf("expected total 0, got %d", total)
		}
	})

	t.Run("offset_one_limit_two", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := seed(ctx, Accounts(1, 2, 3, 4, 5)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		list, err := repo.ListDesc(ctx, repository.Page{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got := ids(list); !equalIDs(got, []int64{4, 3}) {
			t.Fatalf("expected [4 3], got %v", got)
		}
		total, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if total != 5 {
			t.Fatalf("expected total 5, got %d", total)
		}
	})

	t.Run("default_window_returns_all", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := seed(ctx, Accounts(10, 3, 7, 1)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		list, err := repo.ListDesc(ctx, repository.Page{Limit: 1000, Offset: 0})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if got := ids(list); !equalIDs(got, []int64{10, 7, 3, 1}) {
			t.Fatalf("expected [10 7 3 1], got %v", got)
		}
		if list[0].Username != "user-10" || list[0].Email != "user-10@example.com" || list[0].Status != "active" {
			t.Fatalf("fields not round-tripped: %+v", list[0])
		}
	})

	t.Run("offset_past_end", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := seed(ctx, Accounts(1, 2, 3)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		for _, off := range []int{3, 4, 1 << 20} {
			list, err := repo.ListDesc(ctx, repository.Page{Limit: 10, Offset: off})
			if err != nil {
				t.Fatalf("list offset=%d: %v", off, err)
			}
			if len(list) != 0 {
				t.Fatalf("offset=%d: expected empty page, got %v", off, ids(list))
			}
		}
		total, err := repo.Count(ctx)
		if err != nil || total != 3 {
			t.Fatalf("expected total 3, got %d err=%v", total, err)
		}
	})

	t.Run("pages_are_contiguous_and_descending", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var all []int64
		for i := int64(1); i <= 23; i++ {
			all = append(all, i*3)
		}
		if err := seed(ctx, Accounts(all...)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		var walked []int64
		for off := 0; ; off += 5 {
			list, err := repo.ListDesc(ctx, repository.Page{Limit: 5, Offset: off})
			if err != nil {
				t.Fatalf("list offset=%d: %v", off, err)
			}
			if len(list) > 5 {
				t.Fatalf("page exceeds limit: %d", len(list))
			}
			if len(list) == 0 {
				break
			}
			walked = append(walked, ids(list)...)
		}
		if len(walked) != len(all) {
			t.Fatalf("expected %d ids, walked %d", len(all), len(walked))
		}
		for i := 1; i < len(walked); i++ {
			if walked[i] >= walked[i-1] {
				t.Fatalf("not strictly descending at %d: %v", i, walked)
			}
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("reads_inside_tx", func(t *testing.T) {
		tx, repo, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := seed(ctx, Accounts(1, 2, 3)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		var total int64
		var list []model.Account
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			if list, err = repo.ListDesc(ctx, repository.Page{Limit: 2}); err != nil {
				return err
			}
			total, err = repo.Count(ctx)
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if total != 3 || !equalIDs(ids(list), []int64{3, 2}) {
			t.Fatalf("unexpected snapshot: total=%d ids=%v", total, ids(list))
		}
	})

	t.Run("snapshot_hides_concurrent_inserts", func(t *testing.T) {
		tx, repo, seed, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := seed(ctx, Accounts(1, 2)...); err != nil {
			t.Fatalf("seed: %v", err)
		}
		var before, after int64
		err := tx.WithinTx(ctx, func(txCtx context.Context) error {
			var err error
			if before, err = repo.Count(txCtx); err != nil {
				return err
			}
			// seed uses its own connection, outside the transaction
			if err := seed(ctx, Accounts(3)...); err != nil {
				return err
			}
			after, err = repo.Count(txCtx)
			return err
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if before != 2 || after != 2 {
			t.Fatalf("expected stable count 2 inside snapshot, got before=%d after=%d", before, after)
		}
		total, err := repo.Count(ctx)
		if err != nil || total != 3 {
			t.Fatalf("expected 3 after tx, got %d err=%v", total, err)
		}
	})

	t.Run("error_propagates", func(t *testing.T) {
		tx, _, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		marker := assertErr("boom")
		err := tx.WithinTx(context.Background(), func(ctx context.Context) error { return marker })
		if err == nil || err.Error() != marker.Error() {
			t.Fatalf("expected marker error, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	p, cleanup := makePinger(t)
	t.Cleanup(cleanup)
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
