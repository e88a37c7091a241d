package crm

import (
	"net/http"

	"lead_gateway_backend/platform/httpkit"
	"lead_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles CRM sync HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new CRM handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleSync runs one lead sync against Zoho CRM.
// POST /api/v1/crm/zoho/sync
func (h *Handler) HandleSync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	httpkit.OK(c, h.service.Sync(c.Request.Context(), req))
}
