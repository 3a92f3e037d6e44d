package db

import (
	"fmt"
	"log"

	"courtdesk/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// schema lists every table the portal owns, in dependency order.
var schema = []interface{}{
	&models.User{},
	&models.Session{},
	&models.Case{},
	&models.CaseParty{},
	&models.CaseDocument{},
	&models.AssignmentRequest{},
	&models.Motion{},
	&models.Order{},
	&models.TimelineEvent{},
	&models.Notification{},
	&models.AuditRecord{},
	&models.OutboxTask{},
}

// Initialize sets up the database connection with WAL mode for concurrency
func Initialize(dbPath string, environment string) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	// Enable WAL mode for better concurrency support
	dsn := dbPath + "?_journal_mode=WAL"

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// Migrate applies the portal schema to the given connection
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(schema...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// AutoMigrate applies the portal schema to the global connection
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
