// Package services – AnnouncementService
//
// Admin-authored announcements shown to every resident. Plain content
// CRUD; no notification fan-out.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

// AnnouncementService manages announcement content.
type AnnouncementService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Add creates an announcement. Admin only; title and body are required
// after trimming.
func (s *AnnouncementService) Add(ctx context.Context, sess domain.Session, title, body string) (*domain.Announcement, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, ErrMissingFields
	}
	return repo.CreateAnnouncement(ctx, s.DB, title, body)
}

// Update replaces the title and body of an existing announcement.
func (s *AnnouncementService) Update(ctx context.Context, sess domain.Session, id, title, body string) error {
	if sess.Role != domain.RoleAdmin {
		return ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return ErrMissingFields
	}
	if err := repo.UpdateAnnouncement(ctx, s.DB, id, title, body); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}
	return nil
}

// List returns all announcements, newest first. Visible to every role.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	return repo.ListAnnouncements(ctx, s.DB)
}
