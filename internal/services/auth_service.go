package services

import (
	"context"
	"strings"

	"paddy-backend/internal/apperrors"
	"paddy-backend/internal/auth"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/models"
)

type AuthService struct {
	users UserStore
	jwt   *auth.JWTManager
	log   *logger.Logger
}

func NewAuthService(users UserStore, jwt *auth.JWTManager, log *logger.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// Login verifies credentials and issues a tenant-scoped JWT. Unknown email
// and wrong password return the same error so the response doesn't reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Validation("invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Validation("invalid email or password")
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.log.Warn("failed login attempt", "email", email)
		return nil, apperrors.Validation("invalid email or password")
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", "user_id", user.ID, "tenant_id", user.TenantID)
	return &models.LoginResponse{Token: token, User: user}, nil
}
