// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// MaintenanceRequest model and its RequestDecline markers.
//
// Functions:
//
//   - CreateRequest(ctx, db, userID, title, description, preferredAt)
//     Inserts a new request row (status pending, priority medium).
//
//   - GetRequest(ctx, db, id) -> *domain.MaintenanceRequest, error
//     Fetches a request with its Declines preloaded, or ErrNotFound.
//
//   - ListRequests / ListRequestsByUser / ListRequestsByAssignee
//     Role-scoped listings, newest first, Declines preloaded.
//
//   - SetRequestAssignment(ctx, db, id, technicianID)
//     Writes assigned_technician_id and resets accepted_by_technician.
//
//   - SetRequestAccepted / SetRequestPriority / SetRequestProgress
//     Column-level updates for the remaining lifecycle transitions.
//
//   - UpsertDecline / DeleteDecline
//     Idempotent decline marker maintenance per (request, technician).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// CreateRequest inserts a new MaintenanceRequest owned by userID. Status and
// priority take their column defaults (pending, medium).
func CreateRequest(ctx context.Context, db *gorm.DB, userID, title, description string, preferredAt *time.Time) (*domain.MaintenanceRequest, error) {
	r := &domain.MaintenanceRequest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		PreferredAt: preferredAt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRequest fetches a request by ID with Declines preloaded, or ErrNotFound.
func GetRequest(ctx context.Context, db *gorm.DB, id string) (*domain.MaintenanceRequest, error) {
	var r domain.MaintenanceRequest
	err := db.WithContext(ctx).
		Preload("Declines").
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequests returns all requests, newest first, with Declines preloaded.
func ListRequests(ctx context.Context, db *gorm.DB) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := db.WithContext(ctx).
		Preload("Declines").
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListRequestsByUser returns the requests owned by userID, newest first.
func ListRequestsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := db.WithContext(ctx).
		Preload("Declines").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListRequestsByAssignee returns the requests currently assigned to
// technicianID, newest first.
func ListRequestsByAssignee(ctx context.Context, db *gorm.DB, technicianID string) ([]domain.MaintenanceRequest, error) {
	var out []domain.MaintenanceRequest
	err := db.WithContext(ctx).
		Preload("Declines").
		Where("assigned_technician_id = ?", technicianID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// SetRequestAssignment writes the assignee and resets the accepted flag.
// technicianID may be nil to unassign. Returns ErrNotFound when no row matched.
func SetRequestAssignment(ctx context.Context, db *gorm.DB, id string, technicianID *string) error {
	res := db.WithContext(ctx).
		Model(&domain.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"assigned_technician_id": technicianID,
			"accepted_by_technician": false,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetRequestAccepted flips the accepted flag for a request.
func SetRequestAccepted(ctx context.Context, db *gorm.DB, id string, accepted bool) error {
	res := db.WithContext(ctx).
		Model(&domain.MaintenanceRequest{}).
		Where("id = ?", id).
		Update("accepted_by_technician", accepted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetRequestPriority updates the priority column in place.
func SetRequestPriority(ctx context.Context, db *gorm.DB, id string, priority domain.RequestPriority) error {
	res := db.WithContext(ctx).
		Model(&domain.MaintenanceRequest{}).
		Where("id = ?", id).
		Update("priority", priority)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetRequestProgress updates status and technician notes together.
func SetRequestProgress(ctx context.Context, db *gorm.DB, id string, status domain.RequestStatus, notes string) error {
	res := db.WithContext(ctx).
		Model(&domain.MaintenanceRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           status,
			"technician_notes": notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertDecline records that technicianID declined requestID. The unique
// (request, technician) index makes repeat declines no-ops.
func UpsertDecline(ctx context.Context, db *gorm.DB, requestID, technicianID string) error {
	d := &domain.RequestDecline{
		ID:           uuid.NewString(),
		RequestID:    requestID,
		TechnicianID: technicianID,
		CreatedAt:    time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}, {Name: "technician_id"}},
			DoNothing: true,
		}).
		Create(d).Error
}

// DeleteDecline removes the decline marker for (requestID, technicianID).
// Missing markers are not an error; accepting without a prior decline is
// the common path.
func DeleteDecline(ctx context.Context, db *gorm.DB, requestID, technicianID string) error {
	return db.WithContext(ctx).
		Where("request_id = ? AND technician_id = ?", requestID, technicianID).
		Delete(&domain.RequestDecline{}).Error
}
