package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrLoginRequired = errors.New("login handle is required")
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidRole   = errors.New("role must be admin or staff")
	ErrLoginTaken    = errors.New("login handle already exists")
)

// UserService handles administrator-side user management.
type UserService struct {
	userRepo repository.UserRepository
	audit    *AuditService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, audit *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		audit:    audit,
	}
}

// CreateUserInput represents the required information to create a user.
type CreateUserInput struct {
	Name     string
	Login    string
	Role     models.Role
	Password string
}

// CreateUser creates a user. Login handles are normalized to lower case so
// the unique index enforces case-insensitive uniqueness; the role is fixed
// at creation.
func (s *UserService) CreateUser(input CreateUserInput, actor *models.User) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	login := strings.ToLower(strings.TrimSpace(input.Login))
	if login == "" {
		return nil, ErrLoginRequired
	}
	if input.Role != models.RoleAdmin && input.Role != models.RoleStaff {
		return nil, ErrInvalidRole
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByLogin(login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check login: %w", err)
	}

	user := &models.User{
		Name:         name,
		Login:        login,
		Role:         input.Role,
		PasswordHash: utils.HashPassword(input.Password),
		Active:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Recordf("create_user", actor.Login, "created %s (%s)", user.Login, user.Role)
	return user, nil
}

// ToggleActive flips the active flag. Sessions already issued to the user
// stay valid; they only lose access on their next login.
func (s *UserService) ToggleActive(userID uint64, actor *models.User) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.Active = !user.Active
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Recordf("toggle_active", actor.Login, "%s active=%t", user.Login, user.Active)
	return user, nil
}

// ResetPassword overwrites a user's credential, the administrator's recovery
// path for a forgotten password.
func (s *UserService) ResetPassword(userID uint64, newPassword string, actor *models.User) error {
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.PasswordHash = utils.HashPassword(newPassword)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Recordf("reset_password", actor.Login, "reset credential of %s", user.Login)
	return nil
}

// ListUsers returns every user.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
