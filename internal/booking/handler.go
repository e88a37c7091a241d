package booking

import (
	"net/http"

	"lead_gateway_backend/platform/httpkit"
	"lead_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles booking HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleCalcomEvent processes a Cal.com booking trigger.
// POST /api/v1/booking/calcom
func (h *Handler) HandleCalcomEvent(c *gin.Context) {
	var req CalcomEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	resp, err := h.service.ProcessCalcomEvent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
