package database

import (
	"path/filepath"
	"testing"

	"attio-sync/models"
)

// createTestStore opens a migrated SQLite database under t.TempDir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	t.Cleanup(func() { Close(db) })
	return NewStore(db)
}

func strPtr(s string) *string { return &s }

func testCompany(idAttio, name string) *models.Company {
	return &models.Company{IDAttio: idAttio, Name: strPtr(name)}
}
