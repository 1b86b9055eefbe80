package database

import (
	"fmt"

	"github.com/yukikurage/labor-report-api/internal/config"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/utils"
	"gorm.io/gorm"
)

// initialStaff is the roster the system goes live with. Initial staff
// passwords follow the <login>2025 convention and are expected to be replaced
// through the change-password flow.
var initialStaff = []struct {
	Name  string
	Login string
}{
	{"Jeremy", "jeremy"},
	{"Jannia", "jannia"},
	{"Manfred", "manfred"},
	{"Luis", "luis"},
	{"Adrian", "adrian"},
	{"Esteban", "esteban"},
	{"Pamela", "pamela"},
	{"Carlos", "carlos"},
	{"Charly", "charly"},
}

// Seed inserts the initial roster (the administrator plus the staff list)
// when the users table is empty. The admin password comes from config so no
// administrator credential is baked into the binary.
func Seed(cfg *config.Config) error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		return fmt.Errorf("users table is empty and RLD_SEED_ADMIN_PASSWORD is not set")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Name:         cfg.Seed.AdminName,
			Login:        cfg.Seed.AdminLogin,
			Role:         models.RoleAdmin,
			PasswordHash: utils.HashPassword(cfg.Seed.AdminPassword),
			Active:       true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		for _, staff := range initialStaff {
			user := &models.User{
				Name:         staff.Name,
				Login:        staff.Login,
				Role:         models.RoleStaff,
				PasswordHash: utils.HashPassword(staff.Login + "2025"),
				Active:       true,
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to seed staff user %s: %w", staff.Login, err)
			}
		}

		return nil
	})
}
