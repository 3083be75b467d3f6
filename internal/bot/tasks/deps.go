// Package tasks implements the bot's scheduled tasks: the periodic schedule
// check (poll, diff, notify) and database maintenance.
package tasks

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"svitlobot/internal/config"
	"svitlobot/internal/database"
)

// ScheduleFetcher retrieves the current raw schedule payload from the feed.
// *loe.Client satisfies it.
type ScheduleFetcher interface {
	FetchRawHTML(ctx context.Context) (string, error)
}

// MessageSender is the subset of the Telegram client used to deliver
// notifications. *bot.Bot satisfies it.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Store   database.Store
	Fetcher ScheduleFetcher
	Sender  MessageSender
}
