package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/accounts-service/internal/service"
	"github.com/maxviazov/accounts-service/pkg/response"
)

type AccountHandler struct {
	svc                service.AccountService
	defaultRecordCount int
}

func NewAccountHandler(svc service.AccountService, defaultRecordCount int) *AccountHandler {
	if defaultRecordCount <= 0 {
		defaultRecordCount = service.DefaultRecordCount
	}
	return &AccountHandler{svc: svc, defaultRecordCount: defaultRecordCount}
}

func (h *AccountHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/accounts")
	{
		g.GET("", h.list)
	}
}

// list serves GET /accounts?offset=&record_count=.
// Absent or empty parameters take their defaults; anything else must parse as an integer.
func (h *AccountHandler) list(c *gin.Context) {
	var ferrs []service.FieldError
	offset := queryInt(c, "offset", service.DefaultOffset, &ferrs)
	recordCount := queryInt(c, "record_count", h.defaultRecordCount, &ferrs)
	if err := service.NewInvalidInput(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}

	res, err := h.svc.ListAccounts(c.Request.Context(), offset, recordCount)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func queryInt(c *gin.Context, key string, def int, ferrs *[]service.FieldError) int {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*ferrs = append(*ferrs, service.FieldError{Field: key, Message: "must be an integer"})
		return def
	}
	return v
}
