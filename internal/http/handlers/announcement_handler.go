// Announcement HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnnouncementRequest is the JSON payload for creating or updating an
// announcement.
type AnnouncementRequest struct {
	Title string `json:"title" binding:"required" example:"Water outage"`
	Body  string `json:"body" binding:"required" example:"Building B, Tuesday 9-12"`
}

// ListAnnouncements godoc
// @ID          listAnnouncements
// @Summary     List announcements
// @Description Returns all announcements, newest first. Visible to every caller, session or not.
// @Tags        Announcements
// @Produce     json
//
// @Success     200  {array}  domain.Announcement
// @Router      /announcements [get]
func (h *Handlers) ListAnnouncements(c *gin.Context) {
	items, err := h.announcements.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateAnnouncement godoc
// @ID          createAnnouncement
// @Summary     Publish an announcement
// @Description Admin only.
// @Tags        Announcements
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AnnouncementRequest  true  "Announcement payload"
//
// @Success     201  {object}  domain.Announcement
// @Failure     401  {object}  handlers.ErrorResponse  "Not the admin"
// @Router      /announcements [post]
func (h *Handlers) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.announcements.Add(c.Request.Context(), session(c), req.Title, req.Body)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}

// UpdateAnnouncement godoc
// @ID          updateAnnouncement
// @Summary     Edit an announcement
// @Description Admin only. Replaces title and body.
// @Tags        Announcements
// @Accept      json
//
// @Param       id    path  string                        true  "Announcement ID"
// @Param       body  body  handlers.AnnouncementRequest  true  "New content"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Announcement not found"
// @Router      /announcements/{id} [put]
func (h *Handlers) UpdateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.announcements.Update(c.Request.Context(), session(c), c.Param("id"), req.Title, req.Body); err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
