package notion

import (
	"net/http"

	"lead_gateway_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles Notion-style webhook requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new notion handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleEvent processes one Notion-style webhook delivery.
// POST /api/v1/notion
func (h *Handler) HandleEvent(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	// Verification handshake: echo the challenge, persist nothing.
	if challenge, ok := Challenge(payload); ok {
		c.JSON(http.StatusOK, gin.H{"challenge": challenge})
		return
	}

	resp, err := h.service.ProcessEvent(c.Request.Context(), payload)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
