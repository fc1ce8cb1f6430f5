// Request-chat HTTP handlers.
//
// The chat endpoints are deliberately small: all access rules live in the
// chat service. The read response always carries chat_open so clients can
// render the (possibly still locked) thread without a second round trip.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// SendMessageRequest is the JSON payload for appending a chat message.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required" example:"When can you come by?"`
}

// ChatResponse wraps a request's chat thread and whether it is open for the
// caller.
type ChatResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
	ChatOpen bool                 `json:"chat_open"`
}

// GetChat godoc
// @ID          getChat
// @Summary     Read a request's chat thread
// @Description The owning resident and the assigned technician always get a response; before acceptance it is an empty thread with chat_open=false. Everyone else gets 403.
// @Tags        Chat
// @Produce     json
//
// @Param       id  path  string  true  "Request ID"
//
// @Success     200  {object}  handlers.ChatResponse
// @Failure     403  {object}  handlers.ErrorResponse  "No chat access"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id}/chat [get]
func (h *Handlers) GetChat(c *gin.Context) {
	msgs, open, err := h.chat.Messages(c.Request.Context(), sessionPtr(c), c.Param("id"))
	if err != nil {
		failFromService(c, err)
		return
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	ok(c, http.StatusOK, ChatResponse{Messages: msgs, ChatOpen: open})
}

// SendMessage godoc
// @ID          sendChatMessage
// @Summary     Send a chat message
// @Description Appends a message to the request's thread. Closed once the request is complete (409).
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                       true  "Request ID"
// @Param       body  body  handlers.SendMessageRequest  true  "Message body"
//
// @Success     201  {object}  domain.ChatMessage
// @Failure     400  {object}  handlers.ErrorResponse  "Empty body"
// @Failure     403  {object}  handlers.ErrorResponse  "No chat access"
// @Failure     409  {object}  handlers.ErrorResponse  "Chat closed"
// @Router      /requests/{id}/chat [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.chat.Send(c.Request.Context(), sessionPtr(c), c.Param("id"), req.Body)
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, m)
}
