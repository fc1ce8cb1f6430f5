// Authentication and account HTTP handlers.
//
// Registration and login issue the signed session cookie; logout clears it.
// The profile endpoint patches the calling account in place. All role
// decisions beyond "which table does this email live in" belong to the
// service layer.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/services"
)

// RegisterUserRequest is the JSON payload for resident registration.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Uma Patel"`
	Email    string `json:"email" binding:"required" example:"uma@example.com"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Building string `json:"building" example:"B"`
	Floor    string `json:"floor" example:"2"`
	Room     string `json:"room" example:"204"`
}

// RegisterTechnicianRequest is the JSON payload for technician registration.
type RegisterTechnicianRequest struct {
	Name     string `json:"name" binding:"required" example:"Tariq Aziz"`
	Email    string `json:"email" binding:"required" example:"tariq@example.com"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" example:"555-0101"`
}

// LoginRequest is the JSON payload for logging in. Role selects which
// account table (or the configured admin) the credentials are checked
// against.
type LoginRequest struct {
	Role     string `json:"role" binding:"required" example:"user"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse echoes the authenticated identity; the session itself
// travels in the cookie.
type LoginResponse struct {
	Role domain.Role `json:"role"`
	ID   string      `json:"id"`
}

// UpdateProfileRequest carries optional profile patches; absent fields are
// left untouched. Building/Floor/Room only apply to resident sessions.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Building *string `json:"building,omitempty"`
	Floor    *string `json:"floor,omitempty"`
	Room     *string `json:"room,omitempty"`
}

// RegisterUser godoc
// @ID          registerUser
// @Summary     Register a resident account
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterUserRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /auth/register/user [post]
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.accounts.RegisterUser(c.Request.Context(), services.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Building: req.Building,
		Floor:    req.Floor,
		Room:     req.Room,
	})
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, u)
}

// RegisterTechnician godoc
// @ID          registerTechnician
// @Summary     Register a technician account
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterTechnicianRequest  true  "Registration payload"
//
// @Success     201  {object}  domain.Technician
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Router      /auth/register/technician [post]
func (h *Handlers) RegisterTechnician(c *gin.Context) {
	var req RegisterTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	t, err := h.accounts.RegisterTechnician(c.Request.Context(), services.RegisterTechnicianInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		failFromService(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// Login godoc
// @ID          login
// @Summary     Log in and receive the session cookie
// @Description Verifies credentials for the named role and sets the dorm_session cookie.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Credentials"
//
// @Success     200  {object}  handlers.LoginResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.accounts.Login(c.Request.Context(), domain.Role(req.Role), req.Email, req.Password)
	if err != nil {
		failFromService(c, err)
		return
	}

	token, err := h.sessions.Issue(sess)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue session")
		return
	}
	auth.SetCookie(c, h.sessions, token)
	ok(c, http.StatusOK, LoginResponse{Role: sess.Role, ID: sess.ID})
}

// SessionResponse wraps the current session, or null when anonymous.
type SessionResponse struct {
	Session *LoginResponse `json:"session"`
}

// GetSession godoc
// @ID          getSession
// @Summary     Inspect the current session
// @Description Returns the identity behind the session cookie, or a null session for anonymous callers. Never fails.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  handlers.SessionResponse
// @Router      /auth/session [get]
func (h *Handlers) GetSession(c *gin.Context) {
	var resp SessionResponse
	if sess, authed := auth.SessionFrom(c); authed {
		resp.Session = &LoginResponse{Role: sess.Role, ID: sess.ID}
	}
	ok(c, http.StatusOK, resp)
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Clears the session cookie. Always succeeds, session or not.
// @Tags        Auth
//
// @Success     204  {string}  string  "No Content"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	auth.ClearCookie(c)
	noContent(c)
}

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Patch the calling account's profile
// @Description Residents may patch name/phone/location fields, technicians name/phone. Absent fields are untouched.
// @Tags        Auth
// @Accept      json
//
// @Param       body  body  handlers.UpdateProfileRequest  true  "Fields to patch"
//
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "No session"
// @Router      /profile [patch]
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	sess, authed := auth.SessionFrom(c)
	if !authed {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "login required")
		return
	}

	var err error
	switch sess.Role {
	case domain.RoleUser:
		err = h.accounts.UpdateUserProfile(c.Request.Context(), sess, services.UserProfilePatch{
			Name:     req.Name,
			Phone:    req.Phone,
			Building: req.Building,
			Floor:    req.Floor,
			Room:     req.Room,
		})
	case domain.RoleTechnician:
		err = h.accounts.UpdateTechnicianProfile(c.Request.Context(), sess, services.TechnicianProfilePatch{
			Name:  req.Name,
			Phone: req.Phone,
		})
	default:
		// The admin account lives in config, not in a row.
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no editable profile for this session")
		return
	}
	if err != nil {
		failFromService(c, err)
		return
	}
	noContent(c)
}
