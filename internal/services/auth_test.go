package services

import (
	"net/http"
	"testing"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/types"
)

func TestRegisterLoginAuthenticateRoundtrip(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(t.Context(), "Learner@Example.com", "password123", "  Learner  ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "learner@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != types.RoleStudent {
		t.Fatalf("role = %q, want student", user.Role)
	}
	if user.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}

	token, summary, err := env.auth.Login(t.Context(), "learner@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if summary.ID != user.ID {
		t.Fatalf("summary id = %s, want %s", summary.ID, user.ID)
	}

	userID, role, err := env.auth.Authenticate(t.Context(), token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("authenticated id = %s, want %s", userID, user.ID)
	}
	if role != types.RoleStudent {
		t.Fatalf("role = %q, want student", role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "learner@example.com")

	_, err := env.auth.Register(t.Context(), "learner@example.com", "password456", "Second")
	if err == nil {
		t.Fatal("expected conflict")
	}
	if apierr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apierr.StatusOf(err))
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.mustRegister(t, "learner@example.com")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "learner@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.auth.Login(t.Context(), tt.email, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if apierr.StatusOf(err) != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", apierr.StatusOf(err))
			}
			// Both cases return the identical message.
			if err.Error() != "invalid email or password" {
				t.Fatalf("message = %q", err.Error())
			}
		})
	}
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, _, err := env.auth.Authenticate(t.Context(), token); err == nil {
			t.Fatalf("token %q accepted", token)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "password123"},
		{"short password", "learner@example.com", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(t.Context(), tt.email, tt.password, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if apierr.StatusOf(err) != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", apierr.StatusOf(err))
			}
		})
	}
}
