package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager owns the process-wide database handle. The gorm handle and the
// Gateway share one *sql.DB capped at a single connection.
type Manager struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	gateway *SQLGateway
	path    string
}

// NewManager opens (creating if needed) the database file described by config.
func NewManager(config *Config) (*Manager, error) {
	if dir := filepath.Dir(config.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logMode := gormlogger.Silent
	if config.LogSQL {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &Manager{
		db:      db,
		sqlDB:   sqlDB,
		gateway: NewGateway(sqlDB),
		path:    config.Path,
	}, nil
}

// RunMigrations applies the embedded schema migrations.
func (m *Manager) RunMigrations() error {
	logger.Get().Infow("Running database migrations", "path", m.path)

	mig, src, err := m.migrator()
	if err != nil {
		return err
	}
	// Only the source is closed: closing the migrate instance would close
	// the shared *sql.DB.
	defer func() {
		if err := src.Close(); err != nil {
			logger.Get().Warnf("migrate source close error: %v", err)
		}
	}()

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// Migrator returns a migrate instance bound to this database, for the
// migrate CLI. Callers must not Close it; close the Manager instead.
func (m *Manager) Migrator() (*migrate.Migrate, error) {
	mig, _, err := m.migrator()
	return mig, err
}

func (m *Manager) migrator() (*migrate.Migrate, source.Driver, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(m.sqlDB, &sqlite3.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, src, nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Gateway returns the statement-level data access handle.
func (m *Manager) Gateway() *SQLGateway {
	return m.gateway
}

// Path returns the database file path.
func (m *Manager) Path() string {
	return m.path
}

// Close runs PRAGMA optimize and closes the connection.
func (m *Manager) Close() error {
	if !m.gateway.Exec("PRAGMA optimize") {
		logger.Get().Warn("PRAGMA optimize failed before close")
	}
	return m.sqlDB.Close()
}
