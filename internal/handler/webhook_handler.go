package handler

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/response"
	"github.com/adityakashyap5047/Evix/pkg/webhook"
)

// userCreatedEvent is the only webhook type that mutates state
const userCreatedEvent = "user.created"

// WebhookHandler handles signed webhooks from the identity provider
type WebhookHandler struct {
	userService service.UserService
	verifier    *webhook.Verifier
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(userService service.UserService, verifier *webhook.Verifier) *WebhookHandler {
	return &WebhookHandler{
		userService: userService,
		verifier:    verifier,
	}
}

// HandleUserEvent handles POST /webhooks/users. The signature covers the raw
// body, so the payload is read before any JSON parsing.
func (h *WebhookHandler) HandleUserEvent(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Failed to read request body")
		return
	}

	err = h.verifier.Verify(
		c.GetHeader(webhook.HeaderID),
		c.GetHeader(webhook.HeaderTimestamp),
		c.GetHeader(webhook.HeaderSignature),
		payload,
		time.Now(),
	)
	if err != nil {
		response.Unauthorized(c, "Invalid webhook signature")
		return
	}

	var event dto.UserWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		response.BadRequest(c, "Invalid webhook payload")
		return
	}

	if event.Type != userCreatedEvent {
		// Acknowledge so the provider stops redelivering
		response.Success(c, gin.H{"message": "Event ignored"})
		return
	}
	if event.Data.ID == "" {
		response.BadRequest(c, "Webhook payload is missing the user id")
		return
	}

	user, err := h.userService.CreateFromWebhook(c.Request.Context(), &event.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, toUserResponse(user))
}
