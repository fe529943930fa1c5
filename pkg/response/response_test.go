package response_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/accounts-service/internal/repository"
	"github.com/maxviazov/accounts-service/internal/service"
	"github.com/maxviazov/accounts-service/pkg/response"
)

func TestMapError(t *testing.T) {
	invalid := service.NewInvalidInput([]service.FieldError{{Field: "offset", Message: "must be >= 0"}})
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid", invalid, http.StatusBadRequest, "invalid_input"},
		{"wrapped invalid", fmt.Errorf("x: %w", invalid), http.StatusBadRequest, "invalid_input"},
		{"not found", repository.ErrNotFound, http.StatusNotFound, "not_found"},
		{"exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"unavailable", errors.Join(repository.ErrUnavailable, errors.New("08006")), http.StatusServiceUnavailable, "unavailable"},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"canceled", context.Canceled, response.StatusClientClosedRequest, "canceled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := response.MapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, payload.Error)
		})
	}

	_, payload := response.MapError(invalid)
	assert.Equal(t, []service.FieldError{{Field: "offset", Message: "must be >= 0"}}, payload.FieldErrors)
}

func TestWriteError_AbortsAndRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.WriteError(c, errors.New("boom"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
	assert.Len(t, c.Errors, 1)
}
