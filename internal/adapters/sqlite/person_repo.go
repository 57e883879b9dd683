// Package sqlite contains SQLite implementations of repository
// interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/giftdesk/internal/ports/secondary"
)

// PersonRepository implements secondary.PersonRepository with SQLite.
type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new SQLite person repository.
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create persists a new person. The record must have PublicID and
// SourceFormat pre-populated by the service layer.
func (r *PersonRepository) Create(ctx context.Context, person *secondary.PersonRecord) error {
	if person.PublicID == "" {
		return fmt.Errorf("person PublicID must be pre-populated by service layer")
	}
	if person.SourceFormat == "" {
		return fmt.Errorf("person SourceFormat must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO persons (public_id, first_name, last_name, employee_id, person_id, source_format) VALUES (?, ?, ?, ?, ?, ?)",
		person.PublicID,
		nullable(person.FirstName),
		nullable(person.LastName),
		nullable(person.EmployeeID),
		nullable(person.PersonID),
		person.SourceFormat,
	)
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// GetByPublicID retrieves a person by publicId.
func (r *PersonRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.PersonRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT public_id, first_name, last_name, employee_id, person_id, source_format, created_at FROM persons WHERE public_id = ?",
		publicID,
	)
	rec, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", publicID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return rec, nil
}

// List retrieves all persons in import order.
func (r *PersonRepository) List(ctx context.Context) ([]*secondary.PersonRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT public_id, first_name, last_name, employee_id, person_id, source_format, created_at FROM persons ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PersonRecord
	for rows.Next() {
		rec, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (*secondary.PersonRecord, error) {
	var (
		firstName sql.NullString
		lastName  sql.NullString
		empID     sql.NullString
		persID    sql.NullString
		createdAt time.Time
	)
	rec := &secondary.PersonRecord{}
	if err := row.Scan(&rec.PublicID, &firstName, &lastName, &empID, &persID, &rec.SourceFormat, &createdAt); err != nil {
		return nil, err
	}
	rec.FirstName = firstName.String
	rec.LastName = lastName.String
	rec.EmployeeID = empID.String
	rec.PersonID = persID.String
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	return rec, nil
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
