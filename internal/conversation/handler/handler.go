// Package handler exposes the WhatsApp webhook endpoint. It decodes the
// gateway's form-encoded delivery, delegates to the conversation service, and
// renders the reply in the channel envelope.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cerrajeria_backend/internal/conversation/domain"
	"cerrajeria_backend/internal/conversation/service"
	"cerrajeria_backend/platform/logger"
)

// Handler handles inbound WhatsApp webhook calls.
type Handler struct {
	svc *service.Service
	log *logger.Logger
}

// New creates a new webhook handler.
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// HandleInbound processes one gateway delivery.
// POST /webhook/whatsapp (form-encoded: From, Body, MessageSid)
func (h *Handler) HandleInbound(c *gin.Context) {
	senderID := c.PostForm("From")
	body := c.PostForm("Body")
	messageID := c.PostForm("MessageSid")

	reply, err := h.svc.HandleMessage(c.Request.Context(), senderID, body, messageID)
	if err != nil {
		// Storage trouble: tell the user to retry later. The gateway still
		// gets a 200 so it does not hammer us with redeliveries.
		reply = domain.MsgStorageUnavailable
	}

	c.Header("Content-Type", "application/xml")
	c.String(http.StatusOK, RenderTwiML(reply))
}
