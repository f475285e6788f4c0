package chatbot

import (
	"crypto/subtle"
	"fmt"

	"kapirun-api/internal/config"
	"kapirun-api/internal/events"
	"kapirun-api/internal/score"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// ChatbotService defines the interface for chatbot operations
type ChatbotService interface {
	// HandleWebhook processes a raw Telegram update
	HandleWebhook(webhookData []byte) error

	// VerifyWebhookSecret checks the X-Telegram-Bot-Api-Secret-Token header
	// value; always true when no secret is configured
	VerifyWebhookSecret(headerSecret string) bool
}

// chatbotService implements the ChatbotService interface
type chatbotService struct {
	eventBus         events.EventBus
	logger           *zap.Logger
	provider         TelegramProvider
	parser           *WebhookParser
	commandProcessor *CommandProcessor
	config           config.TelegramConfig
}

// NewChatbotService creates a new instance of ChatbotService
func NewChatbotService(eventBus events.EventBus, logger *zap.Logger, cfg config.TelegramConfig, adminSecret string, scoreService score.Service) (ChatbotService, error) {
	provider, err := NewTelegramProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram provider: %w", err)
	}

	service := &chatbotService{
		eventBus:         eventBus,
		logger:           logger,
		provider:         provider,
		parser:           NewWebhookParser(),
		commandProcessor: NewCommandProcessor(scoreService, logger, cfg, adminSecret),
		config:           cfg,
	}

	service.setupEventSubscriptions()

	// Register the webhook with Telegram if configured
	if cfg.WebhookURL != "" {
		if err := provider.SetWebhook(cfg.WebhookURL, cfg.WebhookSecret); err != nil {
			logger.Warn("Failed to set webhook", zap.Error(err))
		}
	}

	return service, nil
}

// setupEventSubscriptions sets up event subscriptions for the chatbot service
func (s *chatbotService) setupEventSubscriptions() {
	if err := s.eventBus.Subscribe(events.TopicScoreSubmitted, s.handleScoreSubmitted); err != nil {
		s.logger.Error("Failed to subscribe to ScoreSubmitted events", zap.Error(err))
	}
}

// handleScoreSubmitted congratulates the player on a new personal best.
// For private chats the chat id equals the Telegram user id.
func (s *chatbotService) handleScoreSubmitted(event events.ScoreSubmitted) {
	if !s.config.AnnounceRecords || !event.Improved {
		return
	}

	text := fmt.Sprintf("🏆 New personal best, @%s: <b>%d</b>!", event.Username, event.BestScore)
	if err := s.provider.SendMessage(event.UserID, text); err != nil {
		s.logger.Warn("Failed to announce personal best",
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

// VerifyWebhookSecret compares the header secret in constant time
func (s *chatbotService) VerifyWebhookSecret(headerSecret string) bool {
	if s.config.WebhookSecret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(s.config.WebhookSecret), []byte(headerSecret)) == 1
}

// HandleWebhook processes incoming webhook data from Telegram
func (s *chatbotService) HandleWebhook(webhookData []byte) error {
	update, err := s.parser.ParseUpdate(webhookData)
	if err != nil {
		s.logger.Error("Failed to parse webhook update", zap.Error(err))
		return WrapParsingError(err, "telegram_update")
	}

	if update.CallbackQuery != nil {
		return s.handleCallbackQuery(update.CallbackQuery)
	}

	cmd, err := s.parser.ExtractCommand(update)
	if err != nil {
		s.logger.Debug("Update carries no dispatchable message",
			zap.Int("update_id", update.UpdateID),
			zap.Error(err))
		return nil
	}

	if cmd == nil {
		// Plain text message: point the user at the game
		if update.Message != nil && update.Message.Chat != nil {
			return s.provider.SendMessage(update.Message.Chat.ID,
				"Hi! Send /start to play Kapi Run.")
		}
		return nil
	}

	return s.dispatchCommand(cmd)
}

// handleCallbackQuery acknowledges game launch callbacks
func (s *chatbotService) handleCallbackQuery(query *tgbotapi.CallbackQuery) error {
	s.logger.Debug("Answering callback query", zap.String("callback_id", query.ID))
	return s.provider.AnswerCallbackQuery(query.ID)
}

func (s *chatbotService) dispatchCommand(cmd *IncomingCommand) error {
	s.logger.Info("Dispatching command",
		zap.String("command", string(cmd.Command)),
		zap.Int64("user_id", cmd.UserID),
		zap.Int64("chat_id", cmd.ChatID))

	if !cmd.Command.IsValid() {
		return s.provider.SendMessage(cmd.ChatID,
			"Unknown command. Send /help for the list of commands.")
	}

	switch cmd.Command {
	case CommandStart:
		return s.sendGameInvite(cmd)

	case CommandTop:
		text, err := s.commandProcessor.ProcessTopCommand()
		if err != nil {
			return err
		}
		return s.provider.SendMessage(cmd.ChatID, text)

	case CommandHelp:
		return s.provider.SendMessage(cmd.ChatID, s.commandProcessor.ProcessHelpCommand())

	case CommandReset:
		text, err := s.commandProcessor.ProcessResetCommand(cmd.UserID, cmd.Args)
		if err != nil {
			return err
		}
		return s.provider.SendMessage(cmd.ChatID, text)

	default:
		return nil
	}
}

// sendGameInvite sends the game card plus a direct URL button when a
// public game URL is configured
func (s *chatbotService) sendGameInvite(cmd *IncomingCommand) error {
	if s.config.GameShortName != "" {
		if err := s.provider.SendGame(cmd.ChatID, s.config.GameShortName); err != nil {
			s.logger.Warn("Failed to send game card", zap.Error(err))
		}
	}

	text := s.commandProcessor.ProcessStartCommand(cmd.UserID)
	if s.config.PublicGameURL == "" {
		return s.provider.SendMessage(cmd.ChatID, text)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🎮 Play Kapi Run", s.config.PublicGameURL),
		),
	)
	return s.provider.SendMessageWithKeyboard(cmd.ChatID, text, keyboard)
}
