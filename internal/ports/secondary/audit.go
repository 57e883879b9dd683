package secondary

import "context"

// Audit event kinds recorded by the workflow.
const (
	AuditKindOrderCreated   = "order_created"
	AuditKindOrderConfirmed = "order_confirmed"
	AuditKindPartialClaim   = "partial_claim_failure"
)

// AuditWriter defines the interface for recording workflow events.
// Writes are best-effort: implementations return errors, but callers
// must never let an audit failure block the primary operation.
type AuditWriter interface {
	// LogEvent records an event for an entity. needsReconciliation
	// marks consistency anomalies that require manual correction and
	// must be queryable separately from ordinary events.
	LogEvent(ctx context.Context, entityType, entityID, kind, message string, needsReconciliation bool) error
}

// AuditRepository extends AuditWriter with query access.
type AuditRepository interface {
	AuditWriter

	// List retrieves recorded events, newest first.
	List(ctx context.Context, filters AuditFilters) ([]*AuditRecord, error)
}

// AuditRecord represents a recorded workflow event.
type AuditRecord struct {
	ID                  int64
	EntityType          string
	EntityID            string
	Kind                string
	Message             string
	NeedsReconciliation bool
	CreatedAt           string
}

// AuditFilters contains filter options for querying audit events.
type AuditFilters struct {
	EntityID            string
	NeedsReconciliation bool // only flagged entries when true
	Limit               int
}
