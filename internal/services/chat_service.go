// Package services – ChatService
//
// This file implements the per-request chat: a pure access predicate over
// lifecycle state plus read and send operations built on it.
//
// The read path is deliberately asymmetric: the two parties of the request
// (the owning resident, and the technician currently assigned to it) may
// always look at it, so before acceptance they receive an empty message
// list with chatOpen=false rather than an error. Everyone else (a
// technician assigned elsewhere or not at all, the admin, an anonymous
// caller) gets ErrChatForbidden. Sending additionally refuses once the
// request is complete: completion freezes chat permanently.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

// ChatService reads and appends request chat messages, gated by the
// lifecycle state of the request.
type ChatService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// MaxBodyRunes caps stored message bodies; longer input is silently
	// truncated, not rejected. Zero means the 4000-rune default.
	MaxBodyRunes int
}

// NewChatService constructs a ChatService with the default body cap.
func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{DB: db, MaxBodyRunes: 4000}
}

// CanAccessChat is the chat gate predicate. Chat opens for the owning
// resident and the assigned technician exactly when the technician has
// accepted, and for nobody else (the admin observes via request state, not
// chat). A nil session is anonymous and never has access.
func CanAccessChat(sess *domain.Session, req *domain.MaintenanceRequest) bool {
	if sess == nil {
		return false
	}
	switch sess.Role {
	case domain.RoleUser:
		return req.UserID == sess.ID &&
			req.AssignedTechnicianID != nil &&
			req.AcceptedByTechnician
	case domain.RoleTechnician:
		return req.AssignedTechnicianID != nil &&
			*req.AssignedTechnicianID == sess.ID &&
			req.AcceptedByTechnician
	}
	return false
}

// Messages returns the chat thread for a request along with the chatOpen
// flag. The owning resident and the currently assigned technician get an
// empty list with chatOpen=false before acceptance; any other caller gets
// ErrChatForbidden.
func (s *ChatService) Messages(ctx context.Context, sess *domain.Session, requestID string) ([]domain.ChatMessage, bool, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Messages",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, ErrRequestNotFound
		}
		return nil, false, err
	}

	chatOpen := CanAccessChat(sess, req)

	// A party to the request may always look: the owning resident, and the
	// technician it is currently assigned to. Being a technician at all is
	// not enough.
	party := false
	if sess != nil {
		switch sess.Role {
		case domain.RoleUser:
			party = req.UserID == sess.ID
		case domain.RoleTechnician:
			party = req.AssignedTechnicianID != nil && *req.AssignedTechnicianID == sess.ID
		}
	}
	if !chatOpen && !party {
		return nil, false, ErrChatForbidden
	}

	if !chatOpen {
		return []domain.ChatMessage{}, false, nil
	}

	msgs, err := repo.ListChatMessages(ctx, s.DB, requestID)
	if err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}

// Send appends a message to a request's chat thread. Only residents and
// technicians ever send; the body is trimmed, rejected when empty, and
// silently truncated to MaxBodyRunes. Sending to a completed request fails
// with ErrChatClosed regardless of the access predicate.
func (s *ChatService) Send(ctx context.Context, sess *domain.Session, requestID, body string) (*domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	if sess == nil || (sess.Role != domain.RoleUser && sess.Role != domain.RoleTechnician) {
		return nil, ErrUnauthorized
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.Status == domain.StatusComplete {
		return nil, ErrChatClosed
	}
	if !CanAccessChat(sess, req) {
		return nil, ErrChatForbidden
	}

	body = s.clip(body)
	return repo.CreateChatMessage(ctx, s.DB, requestID, sess.Role, sess.ID, body)
}

// clip truncates a body to the configured maximum rune length.
func (s *ChatService) clip(body string) string {
	max := s.MaxBodyRunes
	if max <= 0 {
		max = 4000
	}
	if utf8.RuneCountInString(body) > max {
		return string([]rune(body)[:max])
	}
	return body
}
