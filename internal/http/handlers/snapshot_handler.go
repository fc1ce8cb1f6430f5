// Snapshot HTTP handler.
//
// Clients bootstrap their local state from a single snapshot call instead of
// fanning out over every resource endpoint. The snapshot is filtered by
// role server-side; a resident can never pull another resident's requests
// out of it, and password hashes never serialize at all.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

// SnapshotResponse is the role-filtered state bundle returned by GET /snapshot.
//
// Population by role:
//   - Residents: their profile, their requests, their notifications, the
//     technician directory, and all announcements.
//   - Technicians: their profile, their current assignments, the technician
//     directory, and all announcements.
//   - Admin: everything, including the resident directory and the full
//     notification log.
type SnapshotResponse struct {
	Role          domain.Role                 `json:"role"`
	Profile       any                         `json:"profile,omitempty"`
	Users         []domain.User               `json:"users,omitempty"`
	Technicians   []domain.Technician         `json:"technicians"`
	Requests      []domain.MaintenanceRequest `json:"requests"`
	Announcements []domain.Announcement       `json:"announcements"`
	Notifications []domain.Notification       `json:"notifications,omitempty"`
}

// Snapshot godoc
// @ID          snapshot
// @Summary     Role-filtered state snapshot
// @Description Returns everything the calling role is allowed to mirror locally, in one response.
// @Tags        Snapshot
// @Produce     json
//
// @Success     200  {object}  handlers.SnapshotResponse
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Router      /snapshot [get]
func (h *Handlers) Snapshot(c *gin.Context) {
	ctx := c.Request.Context()
	sess, authed := auth.SessionFrom(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	resp := SnapshotResponse{Role: sess.Role}

	announcements, err := repo.ListAnnouncements(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	resp.Announcements = announcements

	technicians, err := repo.ListTechnicians(ctx, h.db)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	resp.Technicians = technicians

	switch sess.Role {
	case domain.RoleUser:
		profile, err := repo.GetUser(ctx, h.db, sess.ID)
		if err != nil {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown account")
			return
		}
		resp.Profile = profile
		if resp.Requests, err = repo.ListRequestsByUser(ctx, h.db, sess.ID); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		if resp.Notifications, err = repo.ListNotificationsByUser(ctx, h.db, sess.ID); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}

	case domain.RoleTechnician:
		profile, err := repo.GetTechnician(ctx, h.db, sess.ID)
		if err != nil {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown account")
			return
		}
		resp.Profile = profile
		if resp.Requests, err = repo.ListRequestsByAssignee(ctx, h.db, sess.ID); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}

	case domain.RoleAdmin:
		if resp.Users, err = repo.ListUsers(ctx, h.db); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		if resp.Requests, err = repo.ListRequests(ctx, h.db); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		if resp.Notifications, err = repo.ListNotifications(ctx, h.db); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
	}

	if resp.Requests == nil {
		resp.Requests = []domain.MaintenanceRequest{}
	}
	ok(c, http.StatusOK, resp)
}
