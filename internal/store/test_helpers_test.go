package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/roach88/workday/internal/responsibility"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRecords returns one record of each distribution and effort shape.
func testRecords() []responsibility.Responsibility {
	return []responsibility.Responsibility{
		{
			Account:      "Team meetings",
			Description:  "Weekly team meeting",
			Distribution: responsibility.On(responsibility.NewDate(2022, 12, 25), responsibility.NewDate(2023, 1, 1)),
			Effort:       responsibility.AbsoluteEffort(1.0),
		},
		{
			Account:      "Non-billable tasks",
			Description:  "Prepare timesheet",
			Distribution: responsibility.Range(responsibility.NewDate(2022, 12, 1), responsibility.NewDate(2023, 1, 31)),
			Effort:       responsibility.RelativeEffort(1.5),
		},
	}
}

// writeStore creates a store at path holding rs.
func writeStore(t *testing.T, path string, rs []responsibility.Responsibility) {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()
	if err := s.Replace(context.Background(), rs); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
}

// writeForeignDatabase creates a SQLite file with an unrelated table.
func writeForeignDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`); err != nil {
		t.Fatalf("create notes: %v", err)
	}
	return path
}
