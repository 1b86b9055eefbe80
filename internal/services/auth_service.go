package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrWrongRole          = errors.New("user does not have the required role")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrPasswordTooShort   = errors.New("password too short")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	audit    *AuditService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, audit *AuditService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		audit:    audit,
	}
}

// AuthenticateInput holds the credentials for authentication. RequiredRole
// scopes role-specific entry points: when set, a principal with a different
// role is rejected before the credential check.
type AuthenticateInput struct {
	Login        string
	Password     string
	RequiredRole *models.Role
}

// Authenticate verifies credentials and returns the authenticated user.
// Login matching is case-insensitive. On success the last-access timestamp
// is stamped best-effort; a stamp failure never fails the login.
func (s *AuthService) Authenticate(input AuthenticateInput) (*models.User, error) {
	user, err := s.userRepo.FindByLogin(input.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserInactive
	}
	if input.RequiredRole != nil && user.Role != *input.RequiredRole {
		return nil, ErrWrongRole
	}
	if utils.HashPassword(input.Password) != user.PasswordHash {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastAccess(user.ID, time.Now()); err != nil {
		s.audit.logger.Warn().Err(err).Uint64("user_id", user.ID).
			Msg("failed to stamp last access")
	}

	s.audit.Recordf("login", user.Login, "role=%s", user.Role)
	return user, nil
}

// ChangePasswordInput holds the fields for a self-service credential change.
type ChangePasswordInput struct {
	UserID          uint64
	CurrentPassword string
	NewPassword     string
}

// ChangePassword replaces a user's credential after verifying the current one.
func (s *AuthService) ChangePassword(input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if utils.HashPassword(input.CurrentPassword) != user.PasswordHash {
		return ErrInvalidCredentials
	}
	if len(input.NewPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user.PasswordHash = utils.HashPassword(input.NewPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit.Record("change_password", user.Login, "user changed own password")
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
