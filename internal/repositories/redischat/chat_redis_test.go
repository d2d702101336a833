package redischat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

func newTestStore(t *testing.T) repositories.ChatRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewChatRedis(client)
}

func TestChatRedis_AppendAndHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// Append out of order; history must come back sorted by timestamp.
	for _, msg := range []*models.Message{
		{RoomID: "main", UserID: "u1", Text: "third", Timestamp: 3000},
		{RoomID: "main", UserID: "u2", Text: "first", Timestamp: 1000},
		{RoomID: "main", UserID: "u1", Text: "second", Timestamp: 2000},
	} {
		if err := store.Append(ctx, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	messages, err := store.History(ctx, "main", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if messages[i].Text != want {
			t.Errorf("Message %d: got %q, want %q", i, messages[i].Text, want)
		}
	}
}

func TestChatRedis_HistoryLimitKeepsNewestTail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 1; i <= 5; i++ {
		if err := store.Append(ctx, &models.Message{
			RoomID:    "main",
			UserID:    "u1",
			Text:      string(rune('a' + i - 1)),
			Timestamp: int64(i * 1000),
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	messages, err := store.History(ctx, "main", 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Text != "d" || messages[1].Text != "e" {
		t.Errorf("Expected newest tail [d e], got [%s %s]", messages[0].Text, messages[1].Text)
	}
}

func TestChatRedis_AppendAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	msg := &models.Message{RoomID: "main", UserID: "u1", Text: "hi"}
	if err := store.Append(ctx, msg); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if msg.ID == "" {
		t.Error("Expected an assigned message ID")
	}
	if msg.Timestamp == 0 {
		t.Error("Expected a server timestamp")
	}
}

func TestChatRedis_RoomsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.Append(ctx, &models.Message{RoomID: "main", UserID: "u1", Text: "main msg", Timestamp: 1000}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, &models.Message{RoomID: "side", UserID: "u1", Text: "side msg", Timestamp: 1000}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	messages, err := store.History(ctx, "main", 0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(messages) != 1 || messages[0].Text != "main msg" {
		t.Errorf("Room isolation broken: %+v", messages)
	}
}

func TestChatRedis_Subscribe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := newTestStore(t)

	messages, stop, err := store.Subscribe(ctx, "main")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer stop()

	sent := &models.Message{RoomID: "main", UserID: "u1", Text: "live", Timestamp: 1000}
	if err := store.Append(ctx, sent); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	select {
	case got := <-messages:
		if got.Text != "live" || got.UserID != "u1" {
			t.Errorf("Got %+v", got)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for live message")
	}
}

func TestChatRedis_NilClient(t *testing.T) {
	store := NewChatRedis(nil)
	ctx := context.Background()

	if err := store.Append(ctx, &models.Message{RoomID: "main"}); err != ErrNotConfigured {
		t.Errorf("Append error = %v, want ErrNotConfigured", err)
	}
	if _, err := store.History(ctx, "main", 0); err != ErrNotConfigured {
		t.Errorf("History error = %v, want ErrNotConfigured", err)
	}
	if _, _, err := store.Subscribe(ctx, "main"); err != ErrNotConfigured {
		t.Errorf("Subscribe error = %v, want ErrNotConfigured", err)
	}
}
