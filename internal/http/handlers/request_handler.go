// Maintenance-request HTTP handlers.
//
// This file exposes the REST endpoints for the request lifecycle:
//   - POST /requests                 (resident creates)
//   - GET  /requests                 (role-scoped listing)
//   - PUT  /requests/{id}/assignee   (admin assigns / unassigns)
//   - PUT  /requests/{id}/priority   (admin re-prioritizes)
//   - POST /requests/{id}/accept     (assigned technician accepts)
//   - POST /requests/{id}/decline    (assigned technician declines)
//   - PUT  /requests/{id}/progress   (assigned technician updates)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Role checks live in the service
// layer; handlers only resolve the session and pass it along.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
	"github.com/dormhub/go-dorm-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AccountService interface {
	// RegisterUser creates a resident account.
	RegisterUser(ctx context.Context, in services.RegisterUserInput) (*domain.User, error)
	// RegisterTechnician creates a technician account.
	RegisterTechnician(ctx context.Context, in services.RegisterTechnicianInput) (*domain.Technician, error)
	// Login authenticates a caller for the given role.
	Login(ctx context.Context, role domain.Role, email, password string) (domain.Session, error)
	// UpdateUserProfile patches the calling resident's profile.
	UpdateUserProfile(ctx context.Context, sess domain.Session, patch services.UserProfilePatch) error
	// UpdateTechnicianProfile patches the calling technician's profile.
	UpdateTechnicianProfile(ctx context.Context, sess domain.Session, patch services.TechnicianProfilePatch) error
}

// LifecycleService defines request lifecycle operations consumed by HTTP
// handlers.
type LifecycleService interface {
	// CreateRequest opens a request for the calling resident.
	CreateRequest(ctx context.Context, sess domain.Session, title, description string, preferredAt *time.Time) (*domain.MaintenanceRequest, error)
	// AssignTechnician sets or clears the assignee of a request.
	AssignTechnician(ctx context.Context, sess domain.Session, requestID string, technicianID *string) error
	// SetPriority updates a request's priority.
	SetPriority(ctx context.Context, sess domain.Session, requestID string, priority domain.RequestPriority) error
	// Accept marks the request accepted by the calling technician.
	Accept(ctx context.Context, sess domain.Session, requestID string) error
	// Decline releases the request back to the admin.
	Decline(ctx context.Context, sess domain.Session, requestID string) error
	// UpdateProgress sets status and technician notes.
	UpdateProgress(ctx context.Context, sess domain.Session, requestID string, status domain.RequestStatus, notes string) error
}

// ChatService defines request-chat operations consumed by HTTP handlers.
type ChatService interface {
	// Messages returns the thread and whether chat is open for the caller.
	Messages(ctx context.Context, sess *domain.Session, requestID string) ([]domain.ChatMessage, bool, error)
	// Send appends a message to the thread.
	Send(ctx context.Context, sess *domain.Session, requestID, body string) (*domain.ChatMessage, error)
}

// AnnouncementService defines announcement operations consumed by HTTP
// handlers.
type AnnouncementService interface {
	// Add creates an announcement.
	Add(ctx context.Context, sess domain.Session, title, body string) (*domain.Announcement, error)
	// Update replaces title and body of an announcement.
	Update(ctx context.Context, sess domain.Session, id, title, body string) error
	// List returns all announcements, newest first.
	List(ctx context.Context) ([]domain.Announcement, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the portal. It depends on abstract
// service interfaces to keep transport concerns separate from business logic.
// The raw DB handle is used only for read-side aggregates (snapshot, feeds,
// ETag statistics) that have no business rules of their own.
type Handlers struct {
	accounts      AccountService
	lifecycle     LifecycleService
	chat          ChatService
	announcements AnnouncementService
	sessions      *auth.Manager
	db            *gorm.DB
}

// New constructs a Handlers instance bound to the given services.
func New(accounts AccountService, lifecycle LifecycleService, chat ChatService, announcements AnnouncementService, sessions *auth.Manager, db *gorm.DB) *Handlers {
	return &Handlers{
		accounts:      accounts,
		lifecycle:     lifecycle,
		chat:          chat,
		announcements: announcements,
		sessions:      sessions,
		db:            db,
	}
}

// session returns the resolved session for the request. The zero Session
// (empty role) is returned for anonymous callers; service-layer role checks
// reject it.
func session(c *gin.Context) domain.Session {
	s, _ := auth.SessionFrom(c)
	return s
}

// sessionPtr returns the resolved session, or nil for anonymous callers.
// Used by the chat endpoints, whose access predicate distinguishes the two.
func sessionPtr(c *gin.Context) *domain.Session {
	if s, ok := auth.SessionFrom(c); ok {
		return &s
	}
	return nil
}

//
// DTOs
//

// CreateRequestRequest is the JSON payload for opening a maintenance request.
type CreateRequestRequest struct {
	// Title is a short summary of the issue.
	Title string `json:"title" binding:"required" example:"Leaking tap"`
	// Description is the full problem report.
	Description string `json:"description" binding:"required" example:"Bathroom tap drips all night"`
	// PreferredAt optionally proposes a visit time.
	PreferredAt *time.Time `json:"preferred_at,omitempty"`
}

// AssignRequest is the JSON payload for setting a request's assignee.
// A null technician_id unassigns.
type AssignRequest struct {
	TechnicianID *string `json:"technician_id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// PriorityRequest is the JSON payload for re-prioritizing a request.
type PriorityRequest struct {
	Priority string `json:"priority" binding:"required" example:"urgent"`
}

// ProgressRequest is the JSON payload for a technician progress update.
type ProgressRequest struct {
	Status string `json:"status" binding:"required" example:"in_progress"`
	Notes  string `json:"notes" example:"Ordered a replacement valve"`
}

//
// Handlers
//

// CreateRequest godoc
// @ID          createRequest
// @Summary     Open a maintenance request
// @Description Creates a request for the calling resident. It starts pending/medium and unassigned.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateRequestRequest  true  "Request payload"
//
// @Success     201  {object}  domain.MaintenanceRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     401  {object}  handlers.ErrorResponse  "Not a resident session"
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	r, err := h.lifecycle.CreateRequest(c.Request.Context(), session(c), req.Title, req.Description, req.PreferredAt)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, r)
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List maintenance requests (role-scoped)
// @Description Residents see their own requests, technicians their current assignments, the admin everything.
// @Tags        Requests
// @Produce     json
//
// @Success     200  {array}   domain.MaintenanceRequest
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	ctx := c.Request.Context()
	sess, authed := auth.SessionFrom(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	var (
		items []domain.MaintenanceRequest
		err   error
	)
	switch sess.Role {
	case domain.RoleUser:
		items, err = repo.ListRequestsByUser(ctx, h.db, sess.ID)
	case domain.RoleTechnician:
		items, err = repo.ListRequestsByAssignee(ctx, h.db, sess.ID)
	case domain.RoleAdmin:
		items, err = repo.ListRequests(ctx, h.db)
	default:
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// AssignTechnician godoc
// @ID          assignTechnician
// @Summary     Assign or unassign a technician
// @Description Admin only. Assigning over an accepted request is a silent no-op; the accepted assignment is locked.
// @Tags        Requests
// @Accept      json
//
// @Param       id    path  string                  true  "Request ID"
// @Param       body  body  handlers.AssignRequest  true  "Assignee (null unassigns)"
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Not the admin"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id}/assignee [put]
func (h *Handlers) AssignTechnician(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.TechnicianID != nil && strings.TrimSpace(*req.TechnicianID) == "" {
		req.TechnicianID = nil
	}

	if err := h.lifecycle.AssignTechnician(c.Request.Context(), session(c), c.Param("id"), req.TechnicianID); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// SetPriority godoc
// @ID          setRequestPriority
// @Summary     Change a request's priority
// @Description Admin only. Priority must be one of urgent, medium, low, enhancement.
// @Tags        Requests
// @Accept      json
//
// @Param       id    path  string                    true  "Request ID"
// @Param       body  body  handlers.PriorityRequest  true  "New priority"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown priority"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id}/priority [put]
func (h *Handlers) SetPriority(c *gin.Context) {
	var req PriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.lifecycle.SetPriority(c.Request.Context(), session(c), c.Param("id"), domain.RequestPriority(req.Priority))
	if err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// AcceptRequest godoc
// @ID          acceptRequest
// @Summary     Accept an assigned request
// @Description Technician only. A no-op unless the caller is the currently assigned technician.
// @Tags        Requests
//
// @Param       id  path  string  true  "Request ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Not a technician session"
// @Router      /requests/{id}/accept [post]
func (h *Handlers) AcceptRequest(c *gin.Context) {
	if err := h.lifecycle.Accept(c.Request.Context(), session(c), c.Param("id")); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// DeclineRequest godoc
// @ID          declineRequest
// @Summary     Decline an assigned request
// @Description Technician only. Records the decline, unassigns the request, and notifies the resident.
// @Tags        Requests
//
// @Param       id  path  string  true  "Request ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Not a technician session"
// @Router      /requests/{id}/decline [post]
func (h *Handlers) DeclineRequest(c *gin.Context) {
	if err := h.lifecycle.Decline(c.Request.Context(), session(c), c.Param("id")); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}

// UpdateProgress godoc
// @ID          updateRequestProgress
// @Summary     Update status and technician notes
// @Description Technician only. Completed requests are frozen and answer 409.
// @Tags        Requests
// @Accept      json
//
// @Param       id    path  string                    true  "Request ID"
// @Param       body  body  handlers.ProgressRequest  true  "New status and notes"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown status"
// @Failure     409  {object}  handlers.ErrorResponse  "Request already complete"
// @Router      /requests/{id}/progress [put]
func (h *Handlers) UpdateProgress(c *gin.Context) {
	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.lifecycle.UpdateProgress(c.Request.Context(), session(c), c.Param("id"), domain.RequestStatus(req.Status), strings.TrimSpace(req.Notes))
	if err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
