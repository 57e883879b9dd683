package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/giftdesk/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// LogEvent records a workflow event.
func (r *AuditRepository) LogEvent(ctx context.Context, entityType, entityID, kind, message string, needsReconciliation bool) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_events (entity_type, entity_id, kind, message, needs_reconciliation) VALUES (?, ?, ?, ?, ?)",
		entityType, entityID, kind, message, needsReconciliation,
	)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// List retrieves recorded events, newest first.
func (r *AuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	query := "SELECT id, entity_type, entity_id, kind, message, needs_reconciliation, created_at FROM audit_events"
	args := []any{}
	where := ""

	if filters.EntityID != "" {
		where = " WHERE entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.NeedsReconciliation {
		if where == "" {
			where = " WHERE needs_reconciliation = 1"
		} else {
			where += " AND needs_reconciliation = 1"
		}
	}
	query += where + " ORDER BY id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AuditRecord
	for rows.Next() {
		var createdAt time.Time
		rec := &secondary.AuditRecord{}
		if err := rows.Scan(&rec.ID, &rec.EntityType, &rec.EntityID, &rec.Kind, &rec.Message, &rec.NeedsReconciliation, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		rec.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, rec)
	}
	return records, rows.Err()
}

var _ secondary.AuditRepository = (*AuditRepository)(nil)
