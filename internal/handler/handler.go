package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/accounts-service/internal/service"
)

// Options carries transport-level defaults resolved from config.
type Options struct {
	// DefaultRecordCount applies when record_count is absent; <= 0 means service.DefaultRecordCount.
	DefaultRecordCount int
}

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, accountSvc service.AccountService, opts Options) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	r.NoRoute(notFound)
	r.NoMethod(methodNotAllowed)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewAccountHandler(accountSvc, opts.DefaultRecordCount).Register(api)
	}
}
