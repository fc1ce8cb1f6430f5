// Package services – AccountService
//
// This file implements registration, login, and profile patching for
// residents and technicians. The admin is a configured singleton: its
// credentials live in config, not in a database row, and its session
// subject is the literal "admin".
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dormhub/go-dorm-backend/internal/auth"
	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

// AccountService manages resident/technician accounts and authentication.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB

	// AdminEmail and AdminPassword are the configured bootstrap admin
	// credentials.
	AdminEmail    string
	AdminPassword string
}

// RegisterUserInput is the payload for resident registration.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Building string
	Floor    string
	Room     string
}

// RegisterTechnicianInput is the payload for technician registration.
type RegisterTechnicianInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// UserProfilePatch carries optional field updates; nil fields are left
// untouched.
type UserProfilePatch struct {
	Name     *string
	Phone    *string
	Building *string
	Floor    *string
	Room     *string
}

// TechnicianProfilePatch carries optional field updates; nil fields are
// left untouched.
type TechnicianProfilePatch struct {
	Name  *string
	Phone *string
}

// RegisterUser creates a resident account and returns it, with the email
// lower-cased and the password bcrypt-hashed.
func (s *AccountService) RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, ErrMissingFields
	}
	if _, err := repo.GetUserByEmail(ctx, s.DB, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Building:     strings.TrimSpace(in.Building),
		Floor:        strings.TrimSpace(in.Floor),
		Room:         strings.TrimSpace(in.Room),
	}
	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RegisterTechnician creates a technician account.
func (s *AccountService) RegisterTechnician(ctx context.Context, in RegisterTechnicianInput) (*domain.Technician, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, ErrMissingFields
	}
	if _, err := repo.GetTechnicianByEmail(ctx, s.DB, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	t := &domain.Technician{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := repo.CreateTechnician(ctx, s.DB, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Login authenticates a caller for the given role and returns the session
// to encode in the cookie. Admin credentials come from config; residents
// and technicians are verified against their bcrypt hashes.
func (s *AccountService) Login(ctx context.Context, role domain.Role, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Session{}, ErrMissingFields
	}

	switch role {
	case domain.RoleAdmin:
		if email != s.AdminEmail || password != s.AdminPassword {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{Role: domain.RoleAdmin, ID: "admin"}, nil

	case domain.RoleUser:
		u, err := repo.GetUserByEmail(ctx, s.DB, email)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return domain.Session{}, ErrInvalidCredentials
			}
			return domain.Session{}, err
		}
		if auth.ComparePassword(u.PasswordHash, password) != nil {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{Role: domain.RoleUser, ID: u.ID}, nil

	case domain.RoleTechnician:
		t, err := repo.GetTechnicianByEmail(ctx, s.DB, email)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return domain.Session{}, ErrInvalidCredentials
			}
			return domain.Session{}, err
		}
		if auth.ComparePassword(t.PasswordHash, password) != nil {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{Role: domain.RoleTechnician, ID: t.ID}, nil
	}

	return domain.Session{}, ErrInvalidRole
}

// UpdateUserProfile patches the calling resident's profile fields.
func (s *AccountService) UpdateUserProfile(ctx context.Context, sess domain.Session, patch UserProfilePatch) error {
	if sess.Role != domain.RoleUser {
		return ErrUnauthorized
	}
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	if patch.Building != nil {
		fields["building"] = *patch.Building
	}
	if patch.Floor != nil {
		fields["floor"] = *patch.Floor
	}
	if patch.Room != nil {
		fields["room"] = *patch.Room
	}
	return repo.UpdateUserFields(ctx, s.DB, sess.ID, fields)
}

// UpdateTechnicianProfile patches the calling technician's profile fields.
func (s *AccountService) UpdateTechnicianProfile(ctx context.Context, sess domain.Session, patch TechnicianProfilePatch) error {
	if sess.Role != domain.RoleTechnician {
		return ErrUnauthorized
	}
	fields := map[string]any{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Phone != nil {
		fields["phone"] = *patch.Phone
	}
	return repo.UpdateTechnicianFields(ctx, s.DB, sess.ID, fields)
}
