package dto

import (
	"time"

	"github.com/yukikurage/labor-report-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64      `json:"id"`
	Name         string      `json:"name"`
	Login        string      `json:"login"`
	Role         models.Role `json:"role"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
	LastAccessAt *time.Time  `json:"last_access_at,omitempty"`
}

// PrincipalDTO is the minimal identity returned by login and /me
type PrincipalDTO struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Login:        user.Login,
		Role:         user.Role,
		Active:       user.Active,
		CreatedAt:    user.CreatedAt,
		LastAccessAt: user.LastAccessAt,
	}
}

// ToPrincipalDTO converts a User model to PrincipalDTO
func ToPrincipalDTO(user models.User) PrincipalDTO {
	return PrincipalDTO{
		ID:    user.ID,
		Name:  user.Name,
		Login: user.Login,
		Role:  user.Role,
	}
}
