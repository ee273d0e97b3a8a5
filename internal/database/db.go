package database

import (
	"log"

	"github.com/sendme-app/sendme-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and runs migrations. The returned
// handle is safe for concurrent use and is injected into every service.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.UserTarget{}, &models.Submission{}); err != nil {
		return nil, err
	}
	return db, nil
}
