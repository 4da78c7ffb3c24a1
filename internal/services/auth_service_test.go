package services

import (
	"context"
	"testing"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/auth"
	"paddy-backend/internal/config"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
)

func newAuthEnv(t *testing.T) (*AuthService, *memStore) {
	t.Helper()
	store := newMemStore()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 24
	cfg.JWT.Issuer = "paddy-backend"
	return NewAuthService(memUsers{store}, auth.NewJWTManager(cfg), logger.NewNop()), store
}

func seedUser(t *testing.T, store *memStore, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{
		ID: store.id(), TenantID: 1, Name: "Operator",
		Email: email, PasswordHash: hash, Role: "operator", IsActive: active,
	}
	store.users = append(store.users, u)
	return u
}

func TestLoginIssuesTenantScopedToken(t *testing.T) {
	svc, store := newAuthEnv(t)
	user := seedUser(t, store, "op@example.com", "secret123", true)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Email: "OP@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("want a token")
	}
	if resp.User.ID != user.ID {
		t.Fatalf("user id = %d, want %d", resp.User.ID, user.ID)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	claims, err := auth.NewJWTManager(cfg).ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.TenantID != user.TenantID || claims.UserID != user.ID {
		t.Fatalf("claims = %+v, want tenant %d user %d", claims, user.TenantID, user.ID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, store := newAuthEnv(t)
	seedUser(t, store, "op@example.com", "secret123", true)
	seedUser(t, store, "gone@example.com", "secret123", false)

	cases := []models.LoginRequest{
		{Email: "nobody@example.com", Password: "secret123"}, // unknown email
		{Email: "op@example.com", Password: "wrong"},         // bad password
		{Email: "gone@example.com", Password: "secret123"},   // deactivated
	}
	var messages []string
	for _, req := range cases {
		_, err := svc.Login(context.Background(), &req)
		if !apperrors.IsValidation(err) {
			t.Fatalf("%s: want validation error, got %v", req.Email, err)
		}
		messages = append(messages, err.Error())
	}
	if messages[0] != messages[1] || messages[1] != messages[2] {
		t.Fatalf("error messages differ: %v", messages)
	}
}
