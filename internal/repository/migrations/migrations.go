// Package migrations embeds the schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Latest selects the newest embedded migration.
const Latest = "latest"

// gooseLogger routes goose output through zerolog instead of the std log package.
type gooseLogger struct{ log zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Info().Msgf(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatal().Msgf(format, v...) }

func setup(logger zerolog.Logger) error {
	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{log: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Up migrates db to version, which is either Latest or a numeric migration id.
func Up(ctx context.Context, db *sql.DB, version string, logger zerolog.Logger) error {
	if err := setup(logger); err != nil {
		return err
	}
	if version == "" || version == Latest {
		return goose.UpContext(ctx, db, dir)
	}
	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse version %q: %w", version, err)
	}
	return goose.UpToContext(ctx, db, dir, v)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	if err := setup(logger); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, dir)
}

// Status logs the applied state of every embedded migration.
func Status(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	if err := setup(logger); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, dir)
}

// MigrateDSN opens a short-lived database/sql handle for dsn and applies Up.
func MigrateDSN(ctx context.Context, dsn, version string, logger zerolog.Logger) (err error) {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect with database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database connection: %w", cerr)
		}
	}()
	return Up(ctx, db, version, logger)
}
