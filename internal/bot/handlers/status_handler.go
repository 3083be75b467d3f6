package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatusHandler returns a handler for the /status command.
func NewStatusHandler(deps HandlerDeps) bot.HandlerFunc {
	return statusHandler{deps}.Handle
}

// statusHandler processes the /status command using injected dependencies.
// It reports the configured group and the last schedule message stored for
// the chat.
type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "status")

	if update.Message == nil {
		log.WarnContext(ctx, "Status handler received update with nil message", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	log.InfoContext(ctx, "Handling /status command", "chat_id", chatID)

	msgs := h.deps.Config.Messages

	sub, err := h.deps.Store.GetSubscription(ctx, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get subscription", "error", err, "chat_id", chatID)
		h.send(ctx, b, chatID, msgs.GeneralError, log)
		return
	}

	if sub == nil || sub.GroupName == "" {
		h.send(ctx, b, chatID, msgs.StatusNotSet, log)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, msgs.StatusGroup, sub.GroupName)
	sb.WriteString("\n\n")
	if sub.LastText.Valid {
		sb.WriteString(msgs.StatusLastHeader)
		sb.WriteString("\n\n")
		sb.WriteString(sub.LastText.String)
	} else {
		sb.WriteString(msgs.StatusNoMessages)
	}

	h.send(ctx, b, chatID, sb.String(), log)
}

func (h statusHandler) send(ctx context.Context, b *bot.Bot, chatID int64, text string, log *slog.Logger) {
	_, err := h.deps.sender(b).SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send status reply", "error", err, "chat_id", chatID)
	}
}
