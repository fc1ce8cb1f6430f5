// Package services – LifecycleService
//
// This file implements the request lifecycle engine: creation by a
// resident, assignment and priority by the admin, and accept / decline /
// progress updates by the assigned technician. Each transition that a
// resident should see also appends one immutable Notification row inside
// the same transaction as the state change.
//
// Guard conventions, in order of strictness:
//   - Wrong role: ErrUnauthorized.
//   - Assigning over an accepted request: silent no-op. Acceptance locks
//     the assignment; only the technician's own decline releases it.
//   - Technician operations on a request not assigned to the caller
//     (including a request that does not exist): silent no-op. These
//     requests are stale or forged; failing loudly would leak whether the
//     ID exists.
//   - Progress updates on a completed request: ErrRequestComplete.
//     Completion freezes the record.
//
// Concurrent assign/accept races resolve as last-write-wins over
// single-row updates; write contention is human-paced.
//
// Observability: public methods are OpenTelemetry-instrumented; spans
// include request and caller identifiers.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

// LifecycleService coordinates maintenance-request state transitions and
// notification emission.
type LifecycleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewLifecycleService constructs a LifecycleService.
func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{DB: db}
}

// CreateRequest opens a new maintenance request for the calling resident.
// Title and description are required after trimming. The request starts
// pending/medium with no assignment, and the resident receives a
// request_created notification.
func (s *LifecycleService) CreateRequest(ctx context.Context, sess domain.Session, title, description string, preferredAt *time.Time) (*domain.MaintenanceRequest, error) {
	tr := otel.Tracer("services/LifecycleService")
	ctx, span := tr.Start(ctx, "CreateRequest",
		trace.WithAttributes(attribute.String("user.id", sess.ID)),
	)
	defer span.End()

	if sess.Role != domain.RoleUser {
		return nil, ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, ErrMissingFields
	}

	var created *domain.MaintenanceRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := repo.CreateRequest(ctx, tx, sess.ID, title, description, preferredAt)
		if err != nil {
			return err
		}
		created = r
		return repo.CreateNotification(ctx, tx, &domain.Notification{
			UserID:    sess.ID,
			RequestID: r.ID,
			Type:      domain.TypeRequestCreated,
			Title:     "Issue reported",
			Message:   "Your maintenance request was created and is pending assignment.",
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AssignTechnician sets (or clears, when technicianID is nil) the assignee
// of a request. Admin only. Once a technician has accepted, the assignment
// is locked and the call is a silent no-op; acceptance can only be released
// by the technician declining. Assignment always resets the accepted flag,
// and the decline history is deliberately preserved so the admin can see
// who already turned the request down.
func (s *LifecycleService) AssignTechnician(ctx context.Context, sess domain.Session, requestID string, technicianID *string) error {
	tr := otel.Tracer("services/LifecycleService")
	ctx, span := tr.Start(ctx, "AssignTechnician",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	if sess.Role != domain.RoleAdmin {
		return ErrUnauthorized
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if req.AcceptedByTechnician {
		// Accepted lock: never yank an active task out from under its
		// technician.
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.SetRequestAssignment(ctx, tx, requestID, technicianID); err != nil {
			return err
		}
		if technicianID == nil {
			return nil
		}
		return repo.CreateNotification(ctx, tx, &domain.Notification{
			UserID:    req.UserID,
			RequestID: requestID,
			Type:      domain.TypeAssigned,
			Title:     "Technician assigned",
			Message:   "A technician has been assigned to your request.",
		})
	})
}

// SetPriority updates a request's priority in place. Admin only, no
// notification.
func (s *LifecycleService) SetPriority(ctx context.Context, sess domain.Session, requestID string, priority domain.RequestPriority) error {
	if sess.Role != domain.RoleAdmin {
		return ErrUnauthorized
	}
	if !priority.Valid() {
		return ErrInvalidPriority
	}
	if err := repo.SetRequestPriority(ctx, s.DB, requestID, priority); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	return nil
}

// Accept marks the request as accepted by the calling technician. A no-op
// unless the caller is the currently assigned technician. Accepting clears
// any decline marker this technician left earlier (decline-then-reassign-
// then-accept is a valid path) and notifies the resident with the
// technician's name and phone.
func (s *LifecycleService) Accept(ctx context.Context, sess domain.Session, requestID string) error {
	tr := otel.Tracer("services/LifecycleService")
	ctx, span := tr.Start(ctx, "Accept",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("technician.id", sess.ID),
		),
	)
	defer span.End()

	if sess.Role != domain.RoleTechnician {
		return ErrUnauthorized
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if req.AssignedTechnicianID == nil || *req.AssignedTechnicianID != sess.ID {
		return nil
	}

	message := "A technician accepted your request."
	if tech, terr := repo.GetTechnician(ctx, s.DB, sess.ID); terr == nil {
		phone := tech.Phone
		if phone == "" {
			phone = "—"
		}
		message = tech.Name + " accepted your request. Phone: " + phone
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.SetRequestAccepted(ctx, tx, requestID, true); err != nil {
			return err
		}
		if err := repo.DeleteDecline(ctx, tx, requestID, sess.ID); err != nil {
			return err
		}
		return repo.CreateNotification(ctx, tx, &domain.Notification{
			UserID:    req.UserID,
			RequestID: requestID,
			Type:      domain.TypeTechnicianAccept,
			Title:     "Technician accepted",
			Message:   message,
		})
	})
}

// Decline releases the request back to the admin. A no-op unless the caller
// is the currently assigned technician. The decline marker is upserted (a
// repeat decline does not duplicate), the assignment is cleared, and the
// resident is notified. The notification reuses the assigned type: both
// events mean "assignment needs admin attention".
func (s *LifecycleService) Decline(ctx context.Context, sess domain.Session, requestID string) error {
	tr := otel.Tracer("services/LifecycleService")
	ctx, span := tr.Start(ctx, "Decline",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("technician.id", sess.ID),
		),
	)
	defer span.End()

	if sess.Role != domain.RoleTechnician {
		return ErrUnauthorized
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if req.AssignedTechnicianID == nil || *req.AssignedTechnicianID != sess.ID {
		return nil
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpsertDecline(ctx, tx, requestID, sess.ID); err != nil {
			return err
		}
		if err := repo.SetRequestAssignment(ctx, tx, requestID, nil); err != nil {
			return err
		}
		return repo.CreateNotification(ctx, tx, &domain.Notification{
			UserID:    req.UserID,
			RequestID: requestID,
			Type:      domain.TypeAssigned,
			Title:     "Technician declined",
			Message:   "The assigned technician declined. Admin may assign another.",
		})
	})
}

// UpdateProgress sets the status and technician notes of a request. A no-op
// unless the caller is the currently assigned technician. Once a request is
// complete it is frozen: further updates fail with ErrRequestComplete.
func (s *LifecycleService) UpdateProgress(ctx context.Context, sess domain.Session, requestID string, status domain.RequestStatus, notes string) error {
	tr := otel.Tracer("services/LifecycleService")
	ctx, span := tr.Start(ctx, "UpdateProgress",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.String("request.status", string(status)),
		),
	)
	defer span.End()

	if sess.Role != domain.RoleTechnician {
		return ErrUnauthorized
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}

	req, err := repo.GetRequest(ctx, s.DB, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	if req.AssignedTechnicianID == nil || *req.AssignedTechnicianID != sess.ID {
		return nil
	}
	if req.Status == domain.StatusComplete {
		return ErrRequestComplete
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.SetRequestProgress(ctx, tx, requestID, status, notes); err != nil {
			return err
		}
		return repo.CreateNotification(ctx, tx, &domain.Notification{
			UserID:    req.UserID,
			RequestID: requestID,
			Type:      domain.TypeStatusUpdate,
			Title:     "Issue updated",
			Message:   "Status changed to " + status.Human() + ".",
		})
	})
}
