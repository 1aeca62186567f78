// Package repository provides the data access layer using GORM for database
// operations.
package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openmerit/badgestore/internal/models"
)

// Database drivers selected from the connection URI.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB holds the database connection.
type DB struct {
	*gorm.DB
	driver string
}

// openDB opens a database connection. The driver is chosen from the
// connection URI: postgres URIs and key=value DSNs go to the postgres
// driver, everything else (a file path or ":memory:") to sqlite.
func openDB(dsn string) (*DB, error) {
	driver := driverFor(dsn)

	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	}

	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if driver == DriverPostgres {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// sqlite is single-writer and an in-memory database exists
		// per connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: driver}, nil
}

// driverFor picks the driver name for a connection URI.
func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}

// AutoMigrate creates the schema from the model declarations. The unique
// indexes declared on the models back up the facade's check-then-create
// sequences against concurrent duplicate creation.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Issuer{},
		&models.Badge{},
		&models.Person{},
		&models.Assertion{},
		&models.Team{},
		&models.Series{},
		&models.Milestone{},
		&models.Invitation{},
		&models.Authorization{},
	)
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks if the database is reachable.
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
