package handler_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/accounts-service/internal/handler"
	"github.com/maxviazov/accounts-service/internal/repository"
)

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := handler.NewEngine(zerolog.New(io.Discard), 0)
	var fromCtx string
	r.GET("/probe", func(c *gin.Context) {
		fromCtx, _ = repository.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := get(r, "/probe")
	id := w.Header().Get(handler.RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, fromCtx)
}

func TestRequestID_InboundReused(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := handler.NewEngine(zerolog.New(io.Discard), 0)
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(handler.RequestIDHeader, "caller-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "caller-123", w.Header().Get(handler.RequestIDHeader))
}

func TestAccessLogAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := handler.NewEngine(zerolog.New(&buf), 0)
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := get(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"path":"/panic"`)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	r := newEngine(stubPinger{})

	w := get(r, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
