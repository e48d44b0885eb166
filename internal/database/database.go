package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gamevault/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// services can rely on constraint enforcement instead of
		// check-then-insert.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Println("Database connection established.")

	// The game/genre relation goes through an explicit join model with a
	// composite primary key.
	if err := db.SetupJoinTable(&models.Game{}, "Genres", &models.GameGenre{}); err != nil {
		return nil, fmt.Errorf("set up game_genres join table: %w", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Genre{}, &models.Game{}, &models.Wishlist{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database migrated successfully.")
	return db, nil
}
