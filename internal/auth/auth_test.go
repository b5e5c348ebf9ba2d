package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/argab/lottery/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return NewGate("admin", string(hash), testSecret, time.Hour)
}

func TestLogin(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid", "admin", "password123", false},
		{"wrong password", "admin", "password124", true},
		{"wrong username", "root", "password123", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := gate.Login(tt.username, tt.password)
			if tt.wantErr {
				if !errors.Is(err, models.ErrUnauthorized) {
					t.Fatalf("expected ErrUnauthorized, got %v", err)
				}
				if token != "" {
					t.Fatal("no token should be issued on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if !gate.Authorized(token) {
				t.Fatal("issued token should be authorized")
			}
		})
	}
}

func TestAuthorizedRejects(t *testing.T) {
	gate := newTestGate(t)
	token, err := gate.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if gate.Authorized("") {
		t.Error("empty token authorized")
	}
	if gate.Authorized("not-a-jwt") {
		t.Error("garbage token authorized")
	}
	if gate.Authorized(token + "x") {
		t.Error("tampered token authorized")
	}

	other := NewGate("admin", string(gate.passwordHash), "another-secret-0123456789", time.Hour)
	if other.Authorized(token) {
		t.Error("token signed with a different secret authorized")
	}

	renamed := NewGate("operator", string(gate.passwordHash), testSecret, time.Hour)
	if renamed.Authorized(token) {
		t.Error("token for a different admin authorized")
	}
}

func TestAuthorizedExpiry(t *testing.T) {
	gate := newTestGate(t)
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return issued }

	token, err := gate.Login("admin", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	gate.now = func() time.Time { return issued.Add(30 * time.Minute) }
	if !gate.Authorized(token) {
		t.Fatal("token should be valid before expiry")
	}

	gate.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if gate.Authorized(token) {
		t.Fatal("expired token authorized")
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	gate := NewGate("admin", hash, testSecret, time.Minute)
	if _, err := gate.Login("admin", "s3cret"); err != nil {
		t.Fatalf("Login with hashed password: %v", err)
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
