package database_test

import (
	"context"
	"testing"

	"svitlobot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, nil)
}

func TestGetSubscriptionAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sub, err := store.GetSubscription(ctx, 100)
	if err != nil {
		t.Fatalf("GetSubscription() error = %v", err)
	}
	if sub != nil {
		t.Errorf("GetSubscription() = %+v, want nil for absent chat", sub)
	}
}

func TestCreateSubscriptionIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSubscription(ctx, 100); err != nil {
		t.Fatalf("CreateSubscription() error = %v", err)
	}
	// Second create must not fail or duplicate the row.
	if err := store.CreateSubscription(ctx, 100); err != nil {
		t.Fatalf("CreateSubscription() second call error = %v", err)
	}

	sub, err := store.GetSubscription(ctx, 100)
	if err != nil {
		t.Fatalf("GetSubscription() error = %v", err)
	}
	if sub == nil {
		t.Fatal("GetSubscription() = nil, want subscription")
	}
	if sub.ChatID != 100 || sub.GroupName != "" || sub.LastText.Valid {
		t.Errorf("unexpected subscription: %+v", sub)
	}
}

func TestSetGroupCreatesAndClearsLastText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// SetGroup on an unseen chat creates the subscription.
	if err := store.SetGroup(ctx, 200, "3.1"); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	if err := store.SetLastText(ctx, 200, "schedule A"); err != nil {
		t.Fatalf("SetLastText() error = %v", err)
	}

	sub, err := store.GetSubscription(ctx, 200)
	if err != nil {
		t.Fatalf("GetSubscription() error = %v", err)
	}
	if sub.GroupName != "3.1" || !sub.LastText.Valid || sub.LastText.String != "schedule A" {
		t.Fatalf("unexpected subscription before group change: %+v", sub)
	}

	// Changing the group clears the stored last text.
	if err := store.SetGroup(ctx, 200, "2.2"); err != nil {
		t.Fatalf("SetGroup() update error = %v", err)
	}
	sub, err = store.GetSubscription(ctx, 200)
	if err != nil {
		t.Fatalf("GetSubscription() error = %v", err)
	}
	if sub.GroupName != "2.2" {
		t.Errorf("GroupName = %q, want %q", sub.GroupName, "2.2")
	}
	if sub.LastText.Valid {
		t.Errorf("LastText = %+v, want cleared after group change", sub.LastText)
	}
}

func TestSetGroupRejectsEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetGroup(ctx, 300, "3.1"); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	if err := store.SetGroup(ctx, 300, "   "); err == nil {
		t.Fatal("SetGroup() with blank group expected error")
	}

	sub, err := store.GetSubscription(ctx, 300)
	if err != nil {
		t.Fatalf("GetSubscription() error = %v", err)
	}
	if sub.GroupName != "3.1" {
		t.Errorf("GroupName = %q, want prior group unchanged", sub.GroupName)
	}
}

func TestSetLastTextMissingSubscription(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetLastText(context.Background(), 999, "text"); err == nil {
		t.Fatal("SetLastText() for unknown chat expected error")
	}
}

func TestGetSubscriptionsWithGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Chat 1: subscribed, no group yet. Chat 2 and 3: groups configured.
	if err := store.CreateSubscription(ctx, 1); err != nil {
		t.Fatalf("CreateSubscription() error = %v", err)
	}
	if err := store.SetGroup(ctx, 2, "1.1"); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}
	if err := store.SetGroup(ctx, 3, "3.2"); err != nil {
		t.Fatalf("SetGroup() error = %v", err)
	}

	subs, err := store.GetSubscriptionsWithGroup(ctx)
	if err != nil {
		t.Fatalf("GetSubscriptionsWithGroup() error = %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("GetSubscriptionsWithGroup() returned %d subscriptions, want 2", len(subs))
	}
	if subs[0].ChatID != 2 || subs[1].ChatID != 3 {
		t.Errorf("unexpected ordering or contents: %+v", subs)
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	store := newTestStore(t)

	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Fatalf("RunSQLMaintenance() error = %v", err)
	}
}
