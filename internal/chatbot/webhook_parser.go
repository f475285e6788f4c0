package chatbot

import (
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// WebhookParser provides utilities for parsing Telegram webhook updates
type WebhookParser struct{}

// NewWebhookParser creates a new WebhookParser instance
func NewWebhookParser() *WebhookParser {
	return &WebhookParser{}
}

// ParseUpdate unmarshals webhook data into a Telegram Update struct
func (p *WebhookParser) ParseUpdate(updateData []byte) (*tgbotapi.Update, error) {
	if len(updateData) == 0 {
		return nil, fmt.Errorf("empty update data")
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(updateData, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update data: %w", err)
	}

	if update.UpdateID == 0 {
		return nil, fmt.Errorf("invalid update: missing update ID")
	}

	return &update, nil
}

// ExtractCommand pulls a bot command out of an update. Returns nil when the
// update carries a message that is not a command.
func (p *WebhookParser) ExtractCommand(update *tgbotapi.Update) (*IncomingCommand, error) {
	if update == nil {
		return nil, fmt.Errorf("update is nil")
	}

	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		return nil, fmt.Errorf("update does not contain a message")
	}
	if msg.Chat == nil {
		return nil, fmt.Errorf("message does not contain chat information")
	}

	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return nil, nil
	}

	fields := strings.Fields(text)
	// Group chats address commands as /top@botname
	name := fields[0]
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}

	cmd := &IncomingCommand{
		Command: Command(name),
		Args:    fields[1:],
		ChatID:  msg.Chat.ID,
	}
	if msg.From != nil {
		cmd.UserID = msg.From.ID
		cmd.Username = msg.From.UserName
	}

	return cmd, nil
}
