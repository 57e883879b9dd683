package app

import (
	"context"
	"fmt"

	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	auditRepo secondary.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo secondary.AuditRepository) *AuditServiceImpl {
	return &AuditServiceImpl{auditRepo: auditRepo}
}

// ListEvents lists recorded workflow events, newest first.
func (s *AuditServiceImpl) ListEvents(ctx context.Context, filters primary.AuditFilters) ([]*primary.AuditEvent, error) {
	recs, err := s.auditRepo.List(ctx, secondary.AuditFilters{
		EntityID:            filters.EntityID,
		NeedsReconciliation: filters.NeedsReconciliation,
		Limit:               filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}

	events := make([]*primary.AuditEvent, 0, len(recs))
	for _, rec := range recs {
		events = append(events, &primary.AuditEvent{
			EntityType:          rec.EntityType,
			EntityID:            rec.EntityID,
			Kind:                rec.Kind,
			Message:             rec.Message,
			NeedsReconciliation: rec.NeedsReconciliation,
			CreatedAt:           rec.CreatedAt,
		})
	}
	return events, nil
}
