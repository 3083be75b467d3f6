package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil {
		log.WarnContext(ctx, "Start handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /start command", "chat_id", chatID)

	reply := h.deps.Config.Messages.Welcome
	if err := h.deps.Store.CreateSubscription(ctx, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to create subscription", "error", err, "chat_id", chatID)
		reply = h.deps.Config.Messages.GeneralError
	}

	_, err := h.deps.sender(b).SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: reply})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", chatID)
	}
}
