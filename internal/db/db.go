package db

import (
	"log"
	"strings"

	"miniblog/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the database named by dsn and migrates the schema.
// Postgres DSNs (postgres:// URLs or keyword form) get the postgres driver,
// anything else is treated as a SQLite file path.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "miniblog.db"
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	database, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Auto Migrate
	if err := database.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Vote{},
	); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	return database, nil
}
