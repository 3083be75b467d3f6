package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"

	"svitlobot/internal/schedule"
)

// newScheduleCheckTask creates the scheduled task function for one poll
// cycle: fetch the feed once, extract the schedule message per subscribed
// group, and notify each chat whose message changed since the last cycle.
//
// A fetch failure aborts the cycle and leaves all stored state untouched; a
// group missing from the current schedule only skips its chat. The stored
// last text is updated after a successful send, so a failed delivery is
// retried on the next cycle.
func newScheduleCheckTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "schedule_check")

	return func(ctx context.Context) error {
		startTime := time.Now()

		subs, err := deps.Store.GetSubscriptionsWithGroup(ctx)
		if err != nil {
			return fmt.Errorf("failed to load subscriptions: %w", err)
		}
		if len(subs) == 0 {
			log.DebugContext(ctx, "No subscriptions with a group, skipping cycle")
			return nil
		}

		rawHTML, err := deps.Fetcher.FetchRawHTML(ctx)
		if err != nil {
			log.WarnContext(ctx, "Schedule feed unavailable, retrying next cycle", "error", err)
			return fmt.Errorf("failed to fetch schedule: %w", err)
		}

		fullText, err := schedule.HTMLToText(rawHTML)
		if err != nil {
			return fmt.Errorf("failed to convert schedule payload: %w", err)
		}

		var notified, unchanged, skipped int
		for _, sub := range subs {
			msg, err := schedule.BuildMessage(fullText, sub.GroupName)
			if err != nil {
				if errors.Is(err, schedule.ErrGroupNotFound) {
					log.DebugContext(ctx, "Group absent from current schedule, skipping chat",
						"chat_id", sub.ChatID, "group", sub.GroupName)
					skipped++
					continue
				}
				log.ErrorContext(ctx, "Failed to build schedule message",
					"chat_id", sub.ChatID, "group", sub.GroupName, "error", err)
				skipped++
				continue
			}

			if sub.LastText.Valid && sub.LastText.String == msg {
				unchanged++
				continue
			}

			_, err = deps.Sender.SendMessage(ctx, &bot.SendMessageParams{ChatID: sub.ChatID, Text: msg})
			if err != nil {
				// Not persisted, so the change is re-sent next cycle.
				log.ErrorContext(ctx, "Failed to send schedule update",
					"chat_id", sub.ChatID, "group", sub.GroupName, "error", err)
				continue
			}

			if err := deps.Store.SetLastText(ctx, sub.ChatID, msg); err != nil {
				log.ErrorContext(ctx, "Failed to persist last text",
					"chat_id", sub.ChatID, "error", err)
				continue
			}

			log.InfoContext(ctx, "Sent schedule update", "chat_id", sub.ChatID, "group", sub.GroupName)
			notified++
		}

		log.InfoContext(ctx, "Schedule check cycle finished",
			"subscriptions", len(subs),
			"notified", notified,
			"unchanged", unchanged,
			"skipped", skipped,
			"duration", time.Since(startTime))
		return nil
	}
}
