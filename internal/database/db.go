package database

import (
	"fmt"
	"os"
	"time"

	"it-inventory/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init подключается к базе с повторами, прогоняет миграции и заводит
// дефолтного админа. Хэндл возвращается явно и передаётся дальше по
// слоям — глобального состояния нет.
func Init(dsn string, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info("trying to connect to DB", zap.Int("attempt", i), zap.Int("max", maxAttempts))

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	createDefaultAdmin(db, log)

	return db, nil
}

// Migrate создаёт схему. Вынесено отдельно, чтобы тесты могли
// мигрировать собственную схему.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Status{},
		&models.Property{},
		&models.Type{},
		&models.Employee{},
		&models.Asset{},
		&models.Change{},
		&models.Need{},
	)
}

// админ только из окружения/кода
func createDefaultAdmin(db *gorm.DB, log *zap.Logger) {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Warn("failed to check admin user", zap.Error(err))
		return
	}
	if count > 0 {
		// админ уже есть — ничего не делаем
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn("failed to hash default admin password", zap.Error(err))
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Warn("failed to create default admin", zap.Error(err))
		return
	}

	log.Info("created default admin user", zap.String("username", username))
}
