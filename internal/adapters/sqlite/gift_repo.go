package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/giftdesk/internal/ports/secondary"
)

// GiftRepository implements secondary.GiftRepository with SQLite.
type GiftRepository struct {
	db *sql.DB
}

// NewGiftRepository creates a new SQLite gift repository.
func NewGiftRepository(db *sql.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

// Create persists a new unclaimed gift. The record must have PublicID
// and OwnerID pre-populated by the service layer.
func (r *GiftRepository) Create(ctx context.Context, gift *secondary.GiftRecord) error {
	if gift.PublicID == "" {
		return fmt.Errorf("gift PublicID must be pre-populated by service layer")
	}
	if gift.OwnerID == "" {
		return fmt.Errorf("gift OwnerID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO gifts (public_id, owner_public_id) VALUES (?, ?)",
		gift.PublicID, gift.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create gift: %w", err)
	}
	return nil
}

// GetByPublicID retrieves a gift by publicId.
func (r *GiftRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.GiftRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT public_id, owner_public_id, applicant_public_id, order_public_id, created_at FROM gifts WHERE public_id = ?",
		publicID,
	)
	rec, err := scanGift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("gift %s: %w", publicID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gift: %w", err)
	}
	return rec, nil
}

// List retrieves gifts matching the given filters.
func (r *GiftRepository) List(ctx context.Context, filters secondary.GiftFilters) ([]*secondary.GiftRecord, error) {
	query := "SELECT public_id, owner_public_id, applicant_public_id, order_public_id, created_at FROM gifts"
	args := []any{}
	where := ""

	appendCond := func(cond string, arg any) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
		if arg != nil {
			args = append(args, arg)
		}
	}

	if filters.OwnerID != "" {
		appendCond("owner_public_id = ?", filters.OwnerID)
	}
	if filters.ApplicantID != "" {
		appendCond("applicant_public_id = ?", filters.ApplicantID)
	}
	if filters.OrderID != "" {
		appendCond("order_public_id = ?", filters.OrderID)
	}
	if filters.Unclaimed {
		appendCond("applicant_public_id IS NULL", nil)
	}

	rows, err := r.db.QueryContext(ctx, query+where+" ORDER BY id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	defer rows.Close()

	var records []*secondary.GiftRecord
	for rows.Next() {
		rec, err := scanGift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Claim binds a gift to an applicant and order with a single
// conditional UPDATE. Both fields change together, so the claimed-iff-
// ordered pairing can never be half applied, and the WHERE clause only
// matches while the row is unclaimed or already holds this exact
// claim. Two orders racing for the same gift serialize here: the
// second UPDATE matches zero rows.
func (r *GiftRepository) Claim(ctx context.Context, giftPublicID, applicantPublicID, orderPublicID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE gifts SET applicant_public_id = ?, order_public_id = ?
		 WHERE public_id = ?
		   AND ((applicant_public_id IS NULL AND order_public_id IS NULL)
		     OR (applicant_public_id = ? AND order_public_id = ?))`,
		applicantPublicID, orderPublicID, giftPublicID, applicantPublicID, orderPublicID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim gift: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}
	return n > 0, nil
}

// OwnerHasGift reports whether a gift already exists for an owner.
func (r *GiftRepository) OwnerHasGift(ctx context.Context, ownerPublicID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM gifts WHERE owner_public_id = ?", ownerPublicID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to count gifts: %w", err)
	}
	return n > 0, nil
}

func scanGift(row rowScanner) (*secondary.GiftRecord, error) {
	var (
		applicantID sql.NullString
		orderID     sql.NullString
		createdAt   time.Time
	)
	rec := &secondary.GiftRecord{}
	if err := row.Scan(&rec.PublicID, &rec.OwnerID, &applicantID, &orderID, &createdAt); err != nil {
		return nil, err
	}
	rec.ApplicantID = applicantID.String
	rec.OrderID = orderID.String
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	return rec, nil
}
