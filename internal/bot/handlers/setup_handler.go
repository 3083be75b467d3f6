package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewSetupHandler returns a handler for the /setup <group> command.
func NewSetupHandler(deps HandlerDeps) bot.HandlerFunc {
	return setupHandler{deps}.Handle
}

// setupHandler processes the /setup command using injected dependencies.
type setupHandler struct {
	deps HandlerDeps
}

func (h setupHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "setup")

	if update.Message == nil {
		log.WarnContext(ctx, "Setup handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	group := commandArgument(update.Message.Text)

	if group == "" {
		log.InfoContext(ctx, "Rejecting /setup without a group", "chat_id", chatID)
		h.reply(ctx, b, chatID, h.deps.Config.Messages.SetupUsage, log)
		return
	}

	log.InfoContext(ctx, "Handling /setup command", "chat_id", chatID, "group", group)

	if err := h.deps.Store.SetGroup(ctx, chatID, group); err != nil {
		log.ErrorContext(ctx, "Failed to set group", "error", err, "chat_id", chatID, "group", group)
		h.reply(ctx, b, chatID, h.deps.Config.Messages.GeneralError, log)
		return
	}

	h.reply(ctx, b, chatID, fmt.Sprintf(h.deps.Config.Messages.SetupSaved, group), log)
}

func (h setupHandler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string, log *slog.Logger) {
	_, err := h.deps.sender(b).SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send setup reply", "error", err, "chat_id", chatID)
	}
}

// commandArgument extracts the first argument of a command message, e.g.
// "3.1" out of "/setup 3.1" or "/setup@somebot 3.1".
func commandArgument(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
