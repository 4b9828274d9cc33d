package database

import (
	"fmt"

	"github.com/hadiajavedd/SaySoPrototype/internal/config"
	"github.com/hadiajavedd/SaySoPrototype/internal/logging"
	"github.com/hadiajavedd/SaySoPrototype/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init opens the sqlite store configured in config.Conf and runs migrations.
func Init(log *zap.Logger) {
	db, err := Open(config.Conf.Database.Path, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	DB = db

	log.Info("Database connection established successfully.",
		zap.String("path", config.Conf.Database.Path))
	runMigrations(log)
}

// Open opens a sqlite database at the given path with foreign key
// enforcement on, so cascade deletes actually cascade.
func Open(path string, log *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", path)
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})
}

func runMigrations(log *zap.Logger) {
	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")
}

// Migrate creates any missing tables and reconciles legacy response tables.
// Safe to run on every start.
func Migrate(db *gorm.DB) error {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	err := db.AutoMigrate(
		&models.User{},
		&models.Questionnaire{},
		&models.Question{},
		&models.Response{},
	)
	if err != nil {
		return err
	}
	return EnsureResponseSchema(db)
}

// EnsureResponseSchema patches response tables written by older versions of
// the app, which lacked the answers and timestamp columns. Columns are only
// ever added, never dropped or renamed, and existing rows are preserved, so
// running this on every start is safe.
func EnsureResponseSchema(db *gorm.DB) error {
	var table string
	err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='responses'`).Scan(&table).Error
	if err != nil {
		return fmt.Errorf("checking for responses table: %w", err)
	}
	if table == "" {
		return nil
	}

	var columns []struct {
		Name string
	}
	if err := db.Raw(`PRAGMA table_info(responses)`).Scan(&columns).Error; err != nil {
		return fmt.Errorf("reading responses columns: %w", err)
	}

	has := make(map[string]bool, len(columns))
	for _, c := range columns {
		has[c.Name] = true
	}

	if !has["answers_json"] {
		if err := db.Exec(`ALTER TABLE responses ADD COLUMN answers_json TEXT`).Error; err != nil {
			return fmt.Errorf("adding answers_json column: %w", err)
		}
	}
	if !has["submitted_at"] {
		if err := db.Exec(`ALTER TABLE responses ADD COLUMN submitted_at DATETIME`).Error; err != nil {
			return fmt.Errorf("adding submitted_at column: %w", err)
		}
	}
	return nil
}
