package db

import (
	"log"

	"grove/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to Postgres and returns the handle. Callers pass it to
// the stores explicitly; there is no package-level DB.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Updoot{},
	); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return nil
}
