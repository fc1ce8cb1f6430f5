// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the immutable
// Notification feed.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// CreateNotification appends an immutable notification row. The timestamp is
// server-generated; rows are never updated or deleted.
func CreateNotification(ctx context.Context, db *gorm.DB, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(n).Error
}

// ListNotificationsByUser returns the feed for one user, newest first.
// Ties on created_at are broken by rowid, which is SQLite's insertion
// order, so consumers can reconstruct the latest state of a request
// deterministically even when two rows share a timestamp.
func ListNotificationsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, rowid desc").
		Find(&out).Error
	return out, err
}

// ListNotifications returns every notification, newest first. Admin only.
func ListNotifications(ctx context.Context, db *gorm.DB) ([]domain.Notification, error) {
	var out []domain.Notification
	err := db.WithContext(ctx).
		Order("created_at desc, rowid desc").
		Find(&out).Error
	return out, err
}
