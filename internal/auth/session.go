// Package auth implements the session layer: a signed cookie that encodes
// the caller's role and identity, plus the Gin middleware that resolves it
// into the request context.
//
// The session is an HS256 JWT carried in the "dorm_session" cookie. The
// token holds only {role, subject}; profile data is always re-read from the
// database so a stale cookie can never resurrect deleted state. Handlers
// treat the resolved Session as an oracle: role checks happen in the
// service layer against Session.Role.
package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/dormhub/go-dorm-backend/internal/domain"
)

// CookieName is the session cookie written on login and cleared on logout.
const CookieName = "dorm_session"

// Manager issues and validates session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a session manager. TTL values <= 0 default to 7 days,
// matching the cookie max-age the portal has always used.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime (used for the cookie max-age).
func (m *Manager) TTL() time.Duration { return m.ttl }

// claims is the JWT payload for a session token.
type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given session.
func (m *Manager) Issue(s domain.Session) (string, error) {
	now := time.Now()
	c := &claims{
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Parse validates a token and returns the session it encodes.
func (m *Manager) Parse(token string) (domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return domain.Session{}, errors.New("invalid token claims")
	}
	switch c.Role {
	case domain.RoleUser, domain.RoleTechnician, domain.RoleAdmin:
	default:
		return domain.Session{}, errors.New("unknown role")
	}
	if c.Subject == "" {
		return domain.Session{}, errors.New("missing subject")
	}
	return domain.Session{Role: c.Role, ID: c.Subject}, nil
}
