package chatbot

import (
	"fmt"

	"kapirun-api/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// telegramProvider implements the TelegramProvider interface using the telegram-bot-api library
type telegramProvider struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
	config config.TelegramConfig
}

// NewTelegramProvider creates a new TelegramProvider instance
func NewTelegramProvider(config config.TelegramConfig, logger *zap.Logger) (TelegramProvider, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	// Validate bot by getting bot info
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to validate bot token: %w", err)
	}

	logger.Info("Telegram bot initialized successfully", zap.String("username", bot.Self.UserName))

	return &telegramProvider{
		bot:    bot,
		logger: logger,
		config: config,
	}, nil
}

// SendMessage sends a plain text message to the specified chat
func (p *telegramProvider) SendMessage(chatID int64, text string) error {
	p.logger.Debug("Sending message",
		zap.Int64("chat_id", chatID),
		zap.Int("text_length", len(text)))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := p.bot.Send(msg); err != nil {
		p.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendMessageWithKeyboard sends a message with an inline keyboard
func (p *telegramProvider) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	p.logger.Debug("Sending message with keyboard",
		zap.Int64("chat_id", chatID),
		zap.Int("keyboard_rows", len(keyboard.InlineKeyboard)))

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard

	if _, err := p.bot.Send(msg); err != nil {
		p.logger.Error("Failed to send message with keyboard",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}

	return nil
}

// SendGame sends the HTML5 game card for the given short name
func (p *telegramProvider) SendGame(chatID int64, gameShortName string) error {
	p.logger.Debug("Sending game",
		zap.Int64("chat_id", chatID),
		zap.String("game_short_name", gameShortName))

	game := tgbotapi.GameConfig{
		BaseChat:      tgbotapi.BaseChat{ChatID: chatID},
		GameShortName: gameShortName,
	}

	if _, err := p.bot.Send(game); err != nil {
		p.logger.Error("Failed to send game",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return fmt.Errorf("failed to send game: %w", err)
	}

	return nil
}

// AnswerCallbackQuery acknowledges an inline keyboard callback
func (p *telegramProvider) AnswerCallbackQuery(callbackQueryID string) error {
	callback := tgbotapi.NewCallback(callbackQueryID, "")
	if _, err := p.bot.Request(callback); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}
	return nil
}

// SetWebhook configures the webhook URL for receiving updates
func (p *telegramProvider) SetWebhook(webhookURL, secretToken string) error {
	p.logger.Info("Setting webhook", zap.String("webhook_url", webhookURL))

	// The library's WebhookConfig predates the secret_token parameter,
	// so the request is assembled by hand.
	params := tgbotapi.Params{"url": webhookURL}
	if secretToken != "" {
		params["secret_token"] = secretToken
	}

	if _, err := p.bot.MakeRequest("setWebhook", params); err != nil {
		p.logger.Error("Failed to set webhook",
			zap.String("webhook_url", webhookURL),
			zap.Error(err))
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	p.logger.Info("Webhook set successfully", zap.String("webhook_url", webhookURL))
	return nil
}

// DeleteWebhook removes the configured webhook
func (p *telegramProvider) DeleteWebhook() error {
	p.logger.Info("Deleting webhook")

	if _, err := p.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	return nil
}

// GetMe returns information about the bot
func (p *telegramProvider) GetMe() (*tgbotapi.User, error) {
	me, err := p.bot.GetMe()
	if err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}
	return &me, nil
}
