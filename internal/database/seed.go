package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/shiomura/team-task-api/internal/config"
	"github.com/shiomura/team-task-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperAdmin creates the initial super admin account when none exists.
// Idempotent; a no-op once any super_admin row is present or when no seed
// password is configured.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.SuperAdminPassword == "" {
		log.Println("No super admin exists and SUPER_ADMIN_PASSWORD is unset, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	admin := &models.User{
		Name:         cfg.SuperAdminName,
		Email:        strings.ToLower(cfg.SuperAdminEmail),
		PasswordHash: string(hashed),
		Role:         models.RoleSuperAdmin,
		Status:       models.UserStatusActive,
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}

	log.Printf("Seeded super admin %s", admin.Email)
	return nil
}
