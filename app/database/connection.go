package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"BakeryApp/app/config"
	"BakeryApp/app/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// buildDSN constructs the PostgreSQL connection string.
// Priority: DATABASE_URL > individual DB_* variables.
func buildDSN(cfg *config.AppConfig) string {
	if cfg.DatabaseURL != "" {
		log.Printf("Using DATABASE_URL for database connection")
		return cfg.DatabaseURL
	}

	host := cfg.DBHost
	if host == "" {
		host = "localhost"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	log.Printf("Built database connection from individual variables: host=%s port=%s dbname=%s sslmode=%s",
		host, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

	return dsn
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	}
}

// Initialize sets up the database connection. PostgreSQL when configured,
// otherwise a local SQLite file (CGO-free driver).
func Initialize(cfg *config.AppConfig) error {
	var err error

	if cfg.UsePostgres() {
		db, err = gorm.Open(postgres.Open(buildDSN(cfg)), gormConfig())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	} else {
		log.Printf("No PostgreSQL configured, using local SQLite at %s", cfg.LocalDBPath)
		if err := os.MkdirAll(filepath.Dir(cfg.LocalDBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = gorm.Open(sqlite.Open(cfg.LocalDBPath), gormConfig())
		if err != nil {
			return fmt.Errorf("failed to connect to local database: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database initialized")
	return nil
}

// OpenMemory opens an isolated in-memory SQLite database. Used by tests.
func OpenMemory() (*gorm.DB, error) {
	mem, err := gorm.Open(sqlite.Open(":memory:"), gormConfig())
	if err != nil {
		return nil, err
	}

	// A pooled second connection would see its own empty in-memory database
	sqlDB, err := mem.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.MeasurementUnit{},
		&models.Ingredient{},
		&models.StockMovement{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Product{},
		&models.Production{},
	)
}
