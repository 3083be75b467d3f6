// Package handlers contains Telegram bot command handlers along with their
// registration logic.
package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"svitlobot/internal/config"
	"svitlobot/internal/database"
)

// MessageSender is the subset of the Telegram client used to send replies.
// *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store

	// Sender overrides the bot instance that received the update when
	// sending replies. Leave nil in production; tests inject a fake.
	Sender MessageSender
}

// sender resolves the client replies go through.
func (d HandlerDeps) sender(b *bot.Bot) MessageSender {
	if d.Sender != nil {
		return d.Sender
	}
	return b
}
