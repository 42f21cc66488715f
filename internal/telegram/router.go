package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aekiratli/medicine-reminder/internal/store"
)

// Router wires Telegram updates to command handlers.
type Router struct {
	bot  *tgbotapi.BotAPI
	log  *zap.Logger
	repo store.Repo
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo) *Router {
	return &Router{bot: bot, log: log, repo: repo}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID
	args := splitArgs(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		r.handleStart(ctx, chatID)
	case "new_medicine":
		r.handleNewMedicine(ctx, chatID, args)
	case "delete_medicine":
		r.handleDeleteMedicine(ctx, chatID, args)
	case "list":
		r.handleList(ctx, chatID)
	default:
		// Unknown command — ignore silently.
	}
}

// Notify sends a plain text message to the given chat.
// This makes Router satisfy scheduler.Notifier.
func (r *Router) Notify(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
