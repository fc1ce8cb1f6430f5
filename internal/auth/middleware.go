package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// sessionKey is the Gin context key under which the resolved Session is stored.
const sessionKey = "session"

// Middleware resolves the session cookie into the request context. An
// absent or invalid cookie leaves the request anonymous; individual
// operations decide whether that is an error. The resolved ID is also
// stored under "userID" so the logging and rate-limit middleware pick it up.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err == nil && token != "" {
			if s, perr := m.Parse(token); perr == nil {
				c.Set(sessionKey, s)
				c.Set("userID", string(s.Role)+":"+s.ID)
			}
		}
		c.Next()
	}
}

// SessionFrom returns the resolved session for the request, if any.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s, true
		}
	}
	return domain.Session{}, false
}

// SetCookie writes the session cookie onto the response.
func SetCookie(c *gin.Context, m *Manager, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.TTL().Seconds()), "/", "", false, true)
}

// ClearCookie removes the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// IsRole reports whether the request carries a session with the given role.
func IsRole(c *gin.Context, role domain.Role) bool {
	s, ok := SessionFrom(c)
	return ok && s.Role == role
}
