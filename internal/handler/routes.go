package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/accounts-service/pkg/response"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, response.ErrorPayload{Error: "not_found", Message: "route not found"})
}

func methodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, response.ErrorPayload{Error: "method_not_allowed"})
}
