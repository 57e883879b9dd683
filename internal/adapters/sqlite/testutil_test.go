// Package sqlite_test contains integration tests for SQLite
// repositories.
//
// The schema is loaded in exactly one place: setupTestDB uses
// db.GetSchemaSQL(), so tests always run against the authoritative
// schema and drift fails immediately with "no such column". Do not
// hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/giftdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative
// schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPerson inserts a test person and returns its publicId.
func seedPerson(t *testing.T, db *sql.DB, publicID string) string {
	t.Helper()
	if publicID == "" {
		publicID = "P-001"
	}
	_, err := db.Exec(
		"INSERT INTO persons (public_id, first_name, last_name, source_format) VALUES (?, 'Test', ?, 'name')",
		publicID, publicID,
	)
	if err != nil {
		t.Fatalf("failed to seed person: %v", err)
	}
	return publicID
}

// seedGift inserts an unclaimed test gift and returns its publicId.
func seedGift(t *testing.T, db *sql.DB, publicID, ownerID string) string {
	t.Helper()
	if publicID == "" {
		publicID = "G-001"
	}
	_, err := db.Exec(
		"INSERT INTO gifts (public_id, owner_public_id) VALUES (?, ?)",
		publicID, ownerID,
	)
	if err != nil {
		t.Fatalf("failed to seed gift: %v", err)
	}
	return publicID
}
