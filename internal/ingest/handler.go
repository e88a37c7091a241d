package ingest

import (
	"net/http"

	"lead_gateway_backend/platform/httpkit"
	"lead_gateway_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidRequest = "invalid request body"
	errValidation     = "validation error"
)

// Handler handles lead ingestion HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new ingestion handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleIngestLead captures one inbound lead.
// POST /api/v1/ingest/leads
func (h *Handler) HandleIngestLead(c *gin.Context) {
	var req IngestLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	resp, err := h.service.ProcessLead(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandleLookupOHID resolves the identity for a contact without minting.
// POST /api/v1/lookup/ohid
func (h *Handler) HandleLookupOHID(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}
	if req.Email == nil && req.Phone == nil {
		httpkit.Error(c, http.StatusBadRequest, "email or phone required", nil)
		return
	}

	resp, err := h.service.LookupOHID(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
