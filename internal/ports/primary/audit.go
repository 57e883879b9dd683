package primary

import "context"

// AuditService defines the primary port for reading the audit trail.
type AuditService interface {
	// ListEvents lists recorded workflow events, newest first.
	ListEvents(ctx context.Context, filters AuditFilters) ([]*AuditEvent, error)
}

// AuditEvent is the external view of a recorded workflow event.
type AuditEvent struct {
	EntityType          string
	EntityID            string
	Kind                string
	Message             string
	NeedsReconciliation bool
	CreatedAt           string
}

// AuditFilters contains filter options for listing audit events.
type AuditFilters struct {
	EntityID            string
	NeedsReconciliation bool
	Limit               int
}
