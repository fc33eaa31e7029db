// Package dbtest provides throwaway sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/contacts-backend/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated sqlite database in a per-test temp directory.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(path)))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
