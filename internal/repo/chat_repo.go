// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the per-request
// ChatMessage model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// CreateChatMessage appends a chat message to a request thread.
func CreateChatMessage(ctx context.Context, db *gorm.DB, requestID string, senderRole domain.Role, senderID, body string) (*domain.ChatMessage, error) {
	m := &domain.ChatMessage{
		ID:         uuid.NewString(),
		RequestID:  requestID,
		SenderRole: senderRole,
		SenderID:   senderID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListChatMessages returns a request's messages oldest first as the chat
// view renders them. Timestamp ties fall back to rowid (SQLite insertion
// order) so the thread never reorders between reads.
func ListChatMessages(ctx context.Context, db *gorm.DB, requestID string) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC, rowid ASC").
		Find(&out).Error
	return out, err
}

// CountChatMessages uses a raw COUNT so a missing table surfaces as an error.
func CountChatMessages(ctx context.Context, db *gorm.DB, requestID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM chat_messages WHERE request_id = ?", requestID).
		Scan(&total).Error
	return total, err
}
