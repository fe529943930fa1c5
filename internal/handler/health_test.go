package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/accounts-service/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := handler.NewEngine(zerolog.New(io.Discard), 0)
	// nil service – we only exercise health routes here
	handler.Register(r, p, nil, handler.Options{})
	return r
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name   string
		pinger handler.Pinger
		path   string
		status int
	}{
		{"ready ok", stubPinger{}, "/api/v1/health/ready", http.StatusOK},
		{"ready down", stubPinger{err: errors.New("db down")}, "/api/v1/health/ready", http.StatusServiceUnavailable},
		{"live ok", stubPinger{}, "/api/v1/health/live", http.StatusOK},
		{"live ignores db", stubPinger{err: errors.New("db down")}, "/live", http.StatusOK},
		{"root ready ok", stubPinger{}, "/ready", http.StatusOK},
		{"root ready down", stubPinger{err: errors.New("db down")}, "/ready", http.StatusServiceUnavailable},
		{"nil pinger", nil, "/ready", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(newEngine(tc.pinger), tc.path)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestDocs(t *testing.T) {
	r := newEngine(stubPinger{})

	w := get(r, "/openapi.yaml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/accounts")

	w = get(r, "/docs")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
