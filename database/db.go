package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"moviereviews/internal/config"
	"moviereviews/internal/http-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the database named by cfg.DatabaseURL and migrates the schema.
// postgres:// URLs and key=value DSNs go to Postgres, anything else is a SQLite path.
func ConnectDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger(cfg.LogLevel)}

	dialector, driver := Dialector(cfg.DatabaseURL)
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connected to the database successfully", "driver", driver)
	return db, nil
}

// Dialector picks the gorm driver for a DATABASE_URL value.
func Dialector(url string) (gorm.Dialector, string) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") || strings.Contains(url, "host=") {
		return postgres.Open(url), "postgres"
	}
	return sqlite.Open(sqliteDSN(url)), "sqlite"
}

// sqliteDSN turns on foreign keys so review rows cascade with their movie.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Migrate creates or updates the movie and review tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Movie{}, &models.Review{})
}

// Ping reports whether the database answers; used by the readiness probe.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogger(level string) logger.Interface {
	if strings.EqualFold(level, "debug") {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Silent)
}
