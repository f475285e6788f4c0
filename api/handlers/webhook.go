package handlers

import (
	"errors"
	"io"
	"net/http"

	"kapirun-api/internal/chatbot"
	"kapirun-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler handles Telegram webhook requests
type WebhookHandler struct {
	chatbotService chatbot.ChatbotService
	logger         *logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(chatbotService chatbot.ChatbotService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// HandleTelegramWebhook processes incoming Telegram webhook updates.
// Apart from the secret-token check it always answers 200: any other
// status makes Telegram re-deliver the same update.
func (h *WebhookHandler) HandleTelegramWebhook(c *gin.Context) {
	if !h.chatbotService.VerifyWebhookSecret(c.GetHeader(secretTokenHeader)) {
		h.logger.Warn("Webhook secret token mismatch", "client_ip", c.ClientIP())
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body", "error", err)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if len(body) == 0 {
		h.logger.Warn("Received empty webhook body")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.chatbotService.HandleWebhook(body); err != nil {
		var parseErr chatbot.WebhookParsingError
		if errors.As(err, &parseErr) {
			h.logger.Warn("Unparsable webhook payload", "error", err)
		} else {
			h.logger.Error("Failed to process webhook",
				"error", err,
				"body_size", len(body))
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
