package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"catsofasia/domain/repositories"
	"catsofasia/domain/services"
	"catsofasia/pkg/config"
	"catsofasia/pkg/logger"
	"catsofasia/pkg/utils"
)

const csrfTokenTTL = 2 * time.Hour

type authService struct {
	userRepo repositories.UserRepository
	csrf     services.CSRFStore
	jwtCfg   config.JWTConfig
}

func NewAuthService(userRepo repositories.UserRepository, csrf services.CSRFStore, jwtCfg config.JWTConfig) services.AuthService {
	return &authService{
		userRepo: userRepo,
		csrf:     csrf,
		jwtCfg:   jwtCfg,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		logger.Auth("login_failed", "unknown username", map[string]interface{}{
			"username": username,
		})
		return "", services.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Auth("login_failed", "wrong password", map[string]interface{}{
			"username": username,
		})
		return "", services.ErrInvalidCredentials
	}

	ttl := time.Duration(s.jwtCfg.TTLHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role, s.jwtCfg.Secret, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Auth("login", "user logged in", map[string]interface{}{
		"username": username,
	})

	return token, nil
}

func (s *authService) IssueCSRFToken(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.csrf.Save(ctx, token, csrfTokenTTL); err != nil {
		return "", fmt.Errorf("failed to store csrf token: %w", err)
	}
	return token, nil
}

func (s *authService) ValidateCSRFToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.csrf.Exists(ctx, token)
}
