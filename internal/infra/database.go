package infra

import (
	"fmt"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update the three inventory tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Reagent{},
		&model.UsageLog{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// SeedDefaultUsers inserts the two documented default accounts on first
// initialization: admin/admin123 and user/user123. These are insecure
// placeholders meant to be changed immediately after deployment.
// Existing usernames are left untouched, so re-running is a no-op.
func SeedDefaultUsers(db *gorm.DB) error {
	defaults := []struct {
		username, password, role string
	}{
		{"admin", "admin123", model.RoleAdmin},
		{"user", "user123", model.RoleUser},
	}

	for _, d := range defaults {
		var n int64
		if err := db.Model(&model.User{}).Where("username = ?", d.username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), 12)
		if err != nil {
			return err
		}
		u := &model.User{
			Username:     d.username,
			PasswordHash: string(hash),
			Role:         d.role,
			Active:       true,
		}
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", d.username, err)
		}
	}
	return nil
}
