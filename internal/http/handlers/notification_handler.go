// Notification feed HTTP handler.
//
// The feed is read-heavy and append-only, which makes it a good fit for weak
// ETags: the (count, latest timestamp) pair changes exactly when the feed
// does, so clients polling the feed mostly see 304s.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
	"github.com/dormhub/go-dorm-backend/internal/utils"
)

// clampFeed applies the optional ?limit= query parameter to a feed slice.
// Zero or invalid values mean "no limit".
func clampFeed(c *gin.Context, items []domain.Notification) []domain.Notification {
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// ListNotifications godoc
// @ID          listNotifications
// @Summary     List the caller's notification feed
// @Description Residents see their own feed, the admin sees every notification, technicians get an empty list (transitions are reported to residents). Supports weak ETag via If-None-Match and may return 304.
// @Tags        Notifications
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.Notification
// @Header      200  {string}  ETag  "Weak ETag for the current feed"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Router      /notifications [get]
func (h *Handlers) ListNotifications(c *gin.Context) {
	ctx := c.Request.Context()
	sess, authed := auth.SessionFrom(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	switch sess.Role {
	case domain.RoleUser:
		// ETag pre-check (best effort).
		count, maxTS, err := repo.NotificationsStats(ctx, h.db, sess.ID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"notifications:%s:%d:%d"`, sess.ID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}

		items, err := repo.ListNotificationsByUser(ctx, h.db, sess.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, clampFeed(c, items))

	case domain.RoleAdmin:
		items, err := repo.ListNotifications(ctx, h.db)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
			return
		}
		ok(c, http.StatusOK, clampFeed(c, items))

	default:
		ok(c, http.StatusOK, []domain.Notification{})
	}
}
