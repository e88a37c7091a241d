package telephony

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

// Handler handles telephony HTTP requests.
type Handler struct {
	service *Service
	val     *validator.Validator
}

// NewHandler creates a new telephony handler.
func NewHandler(service *Service, val *validator.Validator) *Handler {
	return &Handler{service: service, val: val}
}

// HandleTwilioEvent processes a Twilio-style call status callback.
// POST /api/v1/telephony/twilio
func (h *Handler) HandleTwilioEvent(c *gin.Context) {
	var req TwilioEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	resp, err := h.service.ProcessTwilioEvent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// HandleCloudTalkEvent processes a CloudTalk-style call event.
// POST /api/v1/telephony/cloudtalk
func (h *Handler) HandleCloudTalkEvent(c *gin.Context) {
	var req CloudTalkEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, errValidation, err.Error())
		return
	}

	resp, err := h.service.ProcessCloudTalkEvent(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}
