package database

import (
	"database/sql"
	"time"
)

// Subscription represents a chat subscribed to outage-schedule updates.
// Each chat has at most one subscription; the group identifies the outage
// rotation group (e.g. "3.1") and LastText holds the last schedule message
// delivered to the chat, used to detect changes between poll cycles.
type Subscription struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	ChatID    int64          `db:"chat_id"`
	GroupName string         `db:"group_name"`
	LastText  sql.NullString `db:"last_text"` // NULL until the first notification is sent
}
