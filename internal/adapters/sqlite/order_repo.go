package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/giftdesk/internal/ports/secondary"
)

// OrderRepository implements secondary.OrderRepository with SQLite.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new SQLite order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new PENDING order and its gift bundle in one
// transaction. The record must have PublicID, OrderCode, ApplicantID
// and a non-empty bundle pre-populated by the service layer.
func (r *OrderRepository) Create(ctx context.Context, order *secondary.OrderRecord) error {
	if order.PublicID == "" {
		return fmt.Errorf("order PublicID must be pre-populated by service layer")
	}
	if order.OrderCode == "" {
		return fmt.Errorf("order OrderCode must be pre-populated by service layer")
	}
	if len(order.GiftIDs) == 0 {
		return fmt.Errorf("order bundle must be pre-validated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO orders (public_id, order_code, applicant_public_id, confirmation_code, status) VALUES (?, ?, ?, ?, 'PENDING')",
		order.PublicID, order.OrderCode, order.ApplicantID, order.ConfirmationCode,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, giftID := range order.GiftIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_gifts (order_public_id, gift_public_id, position) VALUES (?, ?, ?)",
			order.PublicID, giftID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to add gift %s to bundle: %w", giftID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// GetByPublicID retrieves an order by publicId, including its gift
// bundle in creation order.
func (r *OrderRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.OrderRecord, error) {
	return r.getBy(ctx, "public_id", publicID)
}

// GetByOrderCode retrieves an order by its business-level code.
func (r *OrderRepository) GetByOrderCode(ctx context.Context, orderCode string) (*secondary.OrderRecord, error) {
	return r.getBy(ctx, "order_code", orderCode)
}

func (r *OrderRepository) getBy(ctx context.Context, column, value string) (*secondary.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT public_id, order_code, applicant_public_id, confirmation_code, status, confirmed_by_public_id, confirmed_at, created_at FROM orders WHERE "+column+" = ?",
		value,
	)
	rec, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", value, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := r.loadBundle(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List retrieves orders matching the given filters, including their
// bundles.
func (r *OrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	query := "SELECT public_id, order_code, applicant_public_id, confirmation_code, status, confirmed_by_public_id, confirmed_at, created_at FROM orders"
	args := []any{}

	if filters.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filters.Status)
	}
	query += " ORDER BY id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var records []*secondary.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, rec := range records {
		if err := r.loadBundle(ctx, rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// MarkComplete flips the order from PENDING to COMPLETE as a single
// conditional UPDATE. The WHERE clause re-checks the status, so of two
// concurrent confirmations only one sees an affected row; the loser
// gets false and must not cascade claims.
func (r *OrderRepository) MarkComplete(ctx context.Context, publicID, approverPublicID string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = 'COMPLETE', confirmed_by_public_id = ?, confirmed_at = ? WHERE public_id = ? AND status = 'PENDING'",
		approverPublicID, at.UTC(), publicID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order complete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read completion result: %w", err)
	}
	return n > 0, nil
}

func (r *OrderRepository) loadBundle(ctx context.Context, rec *secondary.OrderRecord) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT gift_public_id FROM order_gifts WHERE order_public_id = ? ORDER BY position",
		rec.PublicID,
	)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	defer rows.Close()

	rec.GiftIDs = nil
	for rows.Next() {
		var giftID string
		if err := rows.Scan(&giftID); err != nil {
			return fmt.Errorf("failed to scan bundle gift: %w", err)
		}
		rec.GiftIDs = append(rec.GiftIDs, giftID)
	}
	return rows.Err()
}

func scanOrder(row rowScanner) (*secondary.OrderRecord, error) {
	var (
		confirmedBy sql.NullString
		confirmedAt sql.NullTime
		createdAt   time.Time
	)
	rec := &secondary.OrderRecord{}
	if err := row.Scan(&rec.PublicID, &rec.OrderCode, &rec.ApplicantID, &rec.ConfirmationCode, &rec.Status, &confirmedBy, &confirmedAt, &createdAt); err != nil {
		return nil, err
	}
	rec.ConfirmedByID = confirmedBy.String
	if confirmedAt.Valid {
		rec.ConfirmedAt = confirmedAt.Time.UTC().Format(time.RFC3339)
	}
	rec.CreatedAt = createdAt.Format(time.RFC3339)
	return rec, nil
}
