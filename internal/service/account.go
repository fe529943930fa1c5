package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/accounts-service/internal/model"
	"github.com/maxviazov/accounts-service/internal/repository"
)

// AccountServiceOptions tunes listing behaviour.
type AccountServiceOptions struct {
	// MaxRecordCount caps record_count; 0 disables the cap.
	MaxRecordCount int
	// Snapshot, when set, runs the page and count reads inside one read-only
	// transaction so both observe the same state. When nil the reads run
	// concurrently and may observe different points in time.
	Snapshot repository.TxManager
}

// accountService holds account listing logic: validation + orchestration, no transport / SQL details.
type accountService struct {
	repo repository.AccountRepository
	opts AccountServiceOptions
	log  zerolog.Logger
}

func NewAccountService(repo repository.AccountRepository, opts AccountServiceOptions, logger zerolog.Logger) AccountService {
	l := logger.With().Str("module", "service").Str("component", "account").Logger()
	return &accountService{repo: repo, opts: opts, log: l}
}

func (s *accountService) ListAccounts(ctx context.Context, offset, recordCount int) (model.AccountsResponse, error) {
	start := time.Now()
	page, err := validatePage(offset, recordCount, s.opts.MaxRecordCount)
	if err != nil {
		s.log.Debug().Int("offset", offset).Int("record_count", recordCount).
			Interface("field_errors", FieldErrors(err)).Msg("list accounts validation failed")
		return model.AccountsResponse{}, err
	}

	var (
		accounts []model.Account
		total    int64
	)
	if s.opts.Snapshot != nil {
		// pgx.Tx is not safe for concurrent use, so reads are sequential here.
		err = s.opts.Snapshot.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			if accounts, err = s.repo.ListDesc(ctx, page); err != nil {
				return err
			}
			total, err = s.repo.Count(ctx)
			return err
		})
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			accounts, err = s.repo.ListDesc(gctx, page)
			return err
		})
		g.Go(func() error {
			var err error
			total, err = s.repo.Count(gctx)
			return err
		})
		err = g.Wait()
	}
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Int("limit", page.Limit).Int("offset", page.Offset).Msg("list accounts failed")
		return model.AccountsResponse{}, err
	}

	s.log.Debug().
		Dur("took", time.Since(start)).
		Int("offset", page.Offset).
		Int("record_count", page.Limit).
		Int("returned", len(accounts)).
		Int64("total_count", total).
		Bool("snapshot", s.opts.Snapshot != nil).
		Msg("accounts listed")
	return model.NewAccountsResponse(total, accounts), nil
}
