package bootstrap

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	"newsagency.com/newsroom/pkg/logger"
)

const adminUsername = "admin"

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entity.Newspaper{}, "Publishers", &entity.NewspaperPublisher{}); err != nil {
		return fmt.Errorf("failed to set up newspaper publishers: %w", err)
	}
	if err := db.SetupJoinTable(&entity.Redactor{}, "Newspapers", &entity.NewspaperPublisher{}); err != nil {
		return fmt.Errorf("failed to set up redactor newspapers: %w", err)
	}

	return db.AutoMigrate(
		&entity.Topic{},
		&entity.Redactor{},
		&entity.Newspaper{},
		&entity.NewspaperPublisher{},
	)
}

// SeedAdminRedactor creates the "admin" account unless it already exists.
func SeedAdminRedactor(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&entity.Redactor{}).
		Where("username = ?", adminUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Log.Info("Admin redactor already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Redactor{
		Username:     adminUsername,
		FirstName:    "Admin",
		PasswordHash: string(hashedPasswordBytes),
	}
	if err := db.Omit("Newspapers").Create(&admin).Error; err != nil {
		return err
	}

	logger.Log.WithField("username", adminUsername).Info("Admin redactor seeded")
	return nil
}
