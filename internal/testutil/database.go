// Package testutil provides test helpers for setting up file-backed SQLite
// databases with the real schema, creating fixtures, and making assertions.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/database"

	"gorm.io/gorm"
)

// SetupTestManager opens a fresh database in a temp dir and applies the
// embedded migrations, so tests run against the same foreign keys and
// defaults as production.
func SetupTestManager(t *testing.T) *database.Manager {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	manager, err := database.NewManager(database.NewConfig(path))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return manager
}

// SetupTestDB returns the gorm handle of a freshly migrated test database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupTestManager(t).DB()
}

// Gateway returns a statement-level gateway sharing db's connection.
func Gateway(t *testing.T, db *gorm.DB) database.Gateway {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	return database.NewGateway(sqlDB)
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
