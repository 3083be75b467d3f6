package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for subscription persistence.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetSubscription retrieves the subscription for a chat. Returns nil, nil if not found.
	GetSubscription(ctx context.Context, chatID int64) (*Subscription, error)

	// CreateSubscription inserts a subscription for a chat if one doesn't exist yet.
	CreateSubscription(ctx context.Context, chatID int64) error

	// SetGroup sets or updates the outage group for a chat, creating the
	// subscription if needed. The stored last text is cleared so the next
	// poll cycle always notifies.
	SetGroup(ctx context.Context, chatID int64, group string) error

	// SetLastText records the last schedule message delivered to a chat.
	SetLastText(ctx context.Context, chatID int64, text string) error

	// GetSubscriptionsWithGroup retrieves all subscriptions that have a group configured.
	GetSubscriptionsWithGroup(ctx context.Context) ([]Subscription, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetSubscription retrieves the subscription for a chat.
func (s *sqlxStore) GetSubscription(ctx context.Context, chatID int64) (*Subscription, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var sub Subscription
	query := `SELECT id, created_at, updated_at, chat_id, group_name, last_text
	          FROM subscriptions WHERE chat_id = ?`

	err := s.db.GetContext(ctx, &sub, query, chatID)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No subscription found", "chat_id", chatID)
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching subscription",
			"chat_id", chatID, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting subscription", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get subscription for chat %d: %w", chatID, err)
	}

	return &sub, nil
}

// CreateSubscription inserts a subscription for a chat if one doesn't exist yet.
func (s *sqlxStore) CreateSubscription(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO subscriptions (chat_id, group_name, last_text, created_at, updated_at)
        VALUES (?, '', NULL, ?, ?)
        ON CONFLICT (chat_id) DO NOTHING;
    `

	if _, err := s.db.ExecContext(ctx, query, chatID, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error creating subscription", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to create subscription for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Subscription ensured", "chat_id", chatID)
	return nil
}

// SetGroup sets or updates the outage group for a chat. The stored last text
// is cleared so the next poll cycle treats the schedule as changed.
func (s *sqlxStore) SetGroup(ctx context.Context, chatID int64, group string) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}
	group = strings.TrimSpace(group)
	if group == "" {
		return fmt.Errorf("group cannot be empty")
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO subscriptions (chat_id, group_name, last_text, created_at, updated_at)
        VALUES (?, ?, NULL, ?, ?)
        ON CONFLICT (chat_id) DO UPDATE SET
            group_name = excluded.group_name,
            last_text = NULL,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.ExecContext(ctx, query, chatID, group, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error setting group", "chat_id", chatID, "group", group, "error", err)
		return fmt.Errorf("failed to set group for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Group set", "chat_id", chatID, "group", group)
	return nil
}

// SetLastText records the last schedule message delivered to a chat.
func (s *sqlxStore) SetLastText(ctx context.Context, chatID int64, text string) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	now := time.Now().UTC()
	query := `UPDATE subscriptions SET last_text = ?, updated_at = ? WHERE chat_id = ?`

	result, err := s.db.ExecContext(ctx, query, text, now, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error setting last text", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to set last text for chat %d: %w", chatID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		s.logger.WarnContext(ctx, "SetLastText affected no rows; subscription missing", "chat_id", chatID)
		return fmt.Errorf("no subscription found for chat %d", chatID)
	}

	s.logger.DebugContext(ctx, "Last text updated", "chat_id", chatID)
	return nil
}

// GetSubscriptionsWithGroup retrieves all subscriptions that have a group configured.
func (s *sqlxStore) GetSubscriptionsWithGroup(ctx context.Context) ([]Subscription, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var subs []Subscription
	query := `SELECT id, created_at, updated_at, chat_id, group_name, last_text
	          FROM subscriptions
	          WHERE group_name != ''
	          ORDER BY chat_id`

	err := s.db.SelectContext(ctx, &subs, query)

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing subscriptions", "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error listing subscriptions with group", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions with group: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched subscriptions with group", "count", len(subs))
	return subs, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
