package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/accounts-service/internal/config"
	"github.com/maxviazov/accounts-service/internal/logger"
	"github.com/maxviazov/accounts-service/internal/repository"
	"github.com/maxviazov/accounts-service/internal/repository/migrations"
)

var (
	configPath = flag.String("config", "config.yaml", "path to the YAML config file")
	version    = flag.String("version", migrations.Latest, "target version for up: latest or a migration id")
)

var errUnknownCommand = errors.New("unknown command")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down|status\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print("expected a subcommand\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	os.Exit(run(context.Background(), args[0], repository.DSN(cfg.Postgres), appLogger))
}

// run returns the process exit code so deferred cleanup happens before os.Exit.
func run(ctx context.Context, command, dsn string, appLogger zerolog.Logger) int {
	conn, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		appLogger.Error().Err(err).Msg("failed to connect with database")
		return 1
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error().Err(err).Msg("failed to close database connection")
		}
	}()

	switch command {
	case "up":
		err = migrations.Up(ctx, conn, *version, appLogger)
	case "down":
		err = migrations.Down(ctx, conn, appLogger)
	case "status":
		err = migrations.Status(ctx, conn, appLogger)
	default:
		err = fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
	if err != nil {
		appLogger.Error().Err(err).Str("command", command).Msg("migration failed")
		if errors.Is(err, errUnknownCommand) {
			flag.Usage()
		}
		return 1
	}
	return 0
}
