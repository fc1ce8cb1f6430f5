package repo

import (
	"context"
	"testing"
	"time"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

func TestCreateChatMessage_Success(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t, &domain.ChatMessage{})

	m, err := CreateChatMessage(ctx, db, "req-1", domain.RoleUser, "u1", "hello")
	if err != nil {
		t.Fatalf("CreateChatMessage: %v", err)
	}
	if m.ID == "" || m.RequestID != "req-1" || m.SenderRole != domain.RoleUser || m.Body != "hello" {
		t.Fatalf("unexpected message: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
}

func TestCreateChatMessage_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	if _, err := CreateChatMessage(context.Background(), db, "r", domain.RoleUser, "u", "x"); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestListChatMessages_OrderedOldestFirst(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t, &domain.ChatMessage{})

	// Insert out of order with explicit timestamps.
	base := time.Now().UTC().Add(-time.Hour)
	for i, body := range []string{"second", "first", "third"} {
		off := []time.Duration{time.Minute, 0, 2 * time.Minute}[i]
		m := &domain.ChatMessage{
			ID:         body,
			RequestID:  "req-1",
			SenderRole: domain.RoleUser,
			SenderID:   "u1",
			Body:       body,
			CreatedAt:  base.Add(off),
		}
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := ListChatMessages(ctx, db, "req-1")
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(got) != 3 || got[0].Body != "first" || got[1].Body != "second" || got[2].Body != "third" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestListChatMessages_TimestampTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t, &domain.ChatMessage{})

	// Same timestamp; IDs would sort the other way round.
	at := time.Now().UTC().Truncate(time.Second)
	for _, m := range []domain.ChatMessage{
		{ID: "zz-first", RequestID: "req-1", SenderRole: domain.RoleUser, SenderID: "u1", Body: "first", CreatedAt: at},
		{ID: "aa-second", RequestID: "req-1", SenderRole: domain.RoleTechnician, SenderID: "t1", Body: "second", CreatedAt: at},
	} {
		m := m
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := ListChatMessages(ctx, db, "req-1")
	if err != nil {
		t.Fatalf("ListChatMessages: %v", err)
	}
	if len(got) != 2 || got[0].Body != "first" || got[1].Body != "second" {
		t.Fatalf("tie not broken by insertion order: %+v", got)
	}
}

func TestCountChatMessages(t *testing.T) {
	ctx := context.Background()
	db := newRepoDB(t, &domain.ChatMessage{})

	if _, err := CreateChatMessage(ctx, db, "req-1", domain.RoleUser, "u1", "a"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateChatMessage(ctx, db, "req-1", domain.RoleTechnician, "t1", "b"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateChatMessage(ctx, db, "req-2", domain.RoleUser, "u1", "c"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := CountChatMessages(ctx, db, "req-1")
	if err != nil || n != 2 {
		t.Fatalf("CountChatMessages = %d, %v", n, err)
	}
}
