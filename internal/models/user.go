package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Login        string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"login"`
	Role         Role       `gorm:"type:varchar(20);not null" json:"role"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Active       bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastAccessAt *time.Time `json:"last_access_at"`

	// Relations
	Tasks       []Task       `gorm:"foreignKey:AssigneeID" json:"-"`
	Submissions []Submission `gorm:"foreignKey:OwnerID" json:"-"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
