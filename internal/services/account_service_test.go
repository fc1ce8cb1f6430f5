package services

import (
	"context"
	"testing"

	"github.com/dormhub/go-dorm-backend/internal/domain"
	"github.com/dormhub/go-dorm-backend/internal/repo"
)

func TestRegisterUser_AndLogin(t *testing.T) {
	db := newServiceDB(t)
	svc := &AccountService{DB: db, AdminEmail: "admin@dorm.test", AdminPassword: "secret"}
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name:     "  Uma  ",
		Email:    " Uma@Dorm.Test ",
		Password: "123",
		Building: "B",
		Floor:    "2",
		Room:     "204",
	})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if u.Email != "uma@dorm.test" || u.Name != "Uma" {
		t.Fatalf("normalization failed: %+v", u)
	}
	if u.PasswordHash == "123" || u.PasswordHash == "" {
		t.Fatalf("password stored in the clear")
	}

	// Same email again, any casing: rejected.
	if _, err := svc.RegisterUser(ctx, RegisterUserInput{Name: "X", Email: "UMA@dorm.test", Password: "p"}); err != ErrEmailRegistered {
		t.Fatalf("want ErrEmailRegistered, got %v", err)
	}

	sess, err := svc.Login(ctx, domain.RoleUser, "UMA@dorm.test", "123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != domain.RoleUser || sess.ID != u.ID {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if _, err := svc.Login(ctx, domain.RoleUser, "uma@dorm.test", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("bad password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, domain.RoleUser, "nobody@dorm.test", "123"); err != ErrInvalidCredentials {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}
	// A resident account does not grant a technician login.
	if _, err := svc.Login(ctx, domain.RoleTechnician, "uma@dorm.test", "123"); err != ErrInvalidCredentials {
		t.Fatalf("cross-role login: want ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterTechnician_AndLogin(t *testing.T) {
	db := newServiceDB(t)
	svc := &AccountService{DB: db}
	ctx := context.Background()

	tech, err := svc.RegisterTechnician(ctx, RegisterTechnicianInput{
		Name:     "Tariq",
		Email:    "tariq@dorm.test",
		Password: "123",
		Phone:    "555-0101",
	})
	if err != nil {
		t.Fatalf("RegisterTechnician: %v", err)
	}

	sess, err := svc.Login(ctx, domain.RoleTechnician, "tariq@dorm.test", "123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Role != domain.RoleTechnician || sess.ID != tech.ID {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if _, err := svc.RegisterTechnician(ctx, RegisterTechnicianInput{Name: "T", Email: "tariq@dorm.test", Password: "p"}); err != ErrEmailRegistered {
		t.Fatalf("want ErrEmailRegistered, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	db := newServiceDB(t)
	svc := &AccountService{DB: db}
	ctx := context.Background()

	cases := []RegisterUserInput{
		{Name: "", Email: "a@b.c", Password: "p"},
		{Name: "A", Email: "", Password: "p"},
		{Name: "A", Email: "a@b.c", Password: ""},
	}
	for i, in := range cases {
		if _, err := svc.RegisterUser(ctx, in); err != ErrMissingFields {
			t.Fatalf("case %d: want ErrMissingFields, got %v", i, err)
		}
	}
}

func TestLogin_Admin(t *testing.T) {
	db := newServiceDB(t)
	svc := &AccountService{DB: db, AdminEmail: "admin@dorm.test", AdminPassword: "secret"}
	ctx := context.Background()

	sess, err := svc.Login(ctx, domain.RoleAdmin, "admin@dorm.test", "secret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if sess.Role != domain.RoleAdmin || sess.ID != "admin" {
		t.Fatalf("unexpected admin session: %+v", sess)
	}

	if _, err := svc.Login(ctx, domain.RoleAdmin, "admin@dorm.test", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, domain.Role("superuser"), "x@y.z", "p"); err != ErrInvalidRole {
		t.Fatalf("want ErrInvalidRole, got %v", err)
	}
	if _, err := svc.Login(ctx, domain.RoleAdmin, "", "secret"); err != ErrMissingFields {
		t.Fatalf("want ErrMissingFields, got %v", err)
	}
}

func TestUpdateProfiles(t *testing.T) {
	db := newServiceDB(t)
	svc := &AccountService{DB: db}
	ctx := context.Background()

	u, _ := svc.RegisterUser(ctx, RegisterUserInput{Name: "Uma", Email: "uma@dorm.test", Password: "123", Room: "204"})
	tech, _ := svc.RegisterTechnician(ctx, RegisterTechnicianInput{Name: "Tariq", Email: "tariq@dorm.test", Password: "123"})

	uSess := domain.Session{Role: domain.RoleUser, ID: u.ID}
	tSess := domain.Session{Role: domain.RoleTechnician, ID: tech.ID}

	if err := svc.UpdateUserProfile(ctx, tSess, UserProfilePatch{}); err != ErrUnauthorized {
		t.Fatalf("technician patching a resident profile: want ErrUnauthorized, got %v", err)
	}

	room := "310"
	phone := "555-0202"
	if err := svc.UpdateUserProfile(ctx, uSess, UserProfilePatch{Room: &room, Phone: &phone}); err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}
	got, err := repo.GetUser(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Room != "310" || got.Phone != "555-0202" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Name != "Uma" {
		t.Fatalf("nil fields must stay untouched: %+v", got)
	}

	name := "Tariq A."
	if err := svc.UpdateTechnicianProfile(ctx, tSess, TechnicianProfilePatch{Name: &name}); err != nil {
		t.Fatalf("UpdateTechnicianProfile: %v", err)
	}
	gt, err := repo.GetTechnician(ctx, db, tech.ID)
	if err != nil {
		t.Fatalf("GetTechnician: %v", err)
	}
	if gt.Name != "Tariq A." {
		t.Fatalf("technician patch not applied: %+v", gt)
	}
}
