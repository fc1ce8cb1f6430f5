// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// Announcement model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// CreateAnnouncement inserts a new announcement row.
func CreateAnnouncement(ctx context.Context, db *gorm.DB, title, body string) (*domain.Announcement, error) {
	a := &domain.Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAnnouncement replaces the title and body of an announcement.
// Returns ErrNotFound when no row matched.
func UpdateAnnouncement(ctx context.Context, db *gorm.DB, id, title, body string) error {
	res := db.WithContext(ctx).
		Model(&domain.Announcement{}).
		Where("id = ?", id).
		Updates(map[string]any{"title": title, "body": body})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListAnnouncements returns all announcements, newest first.
func ListAnnouncements(ctx context.Context, db *gorm.DB) ([]domain.Announcement, error) {
	var out []domain.Announcement
	err := db.WithContext(ctx).Order("created_at desc").Find(&out).Error
	return out, err
}
