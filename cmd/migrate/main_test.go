package main

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// nothing listens on port 1, so any statement fails on connect
const unreachableDSN = "postgres://u:p@127.0.0.1:1/accounts?sslmode=disable&connect_timeout=1"

func TestRun_UnknownCommandReturnsExitCode(t *testing.T) {
	assert.Equal(t, 1, run(context.Background(), "sideways", unreachableDSN, zerolog.New(io.Discard)))
}

func TestRun_MigrationErrorReturnsExitCode(t *testing.T) {
	assert.Equal(t, 1, run(context.Background(), "status", unreachableDSN, zerolog.New(io.Discard)))
}
