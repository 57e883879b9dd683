package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/giftdesk/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockPersonRepository implements secondary.PersonRepository for testing.
type mockPersonRepository struct {
	persons    map[string]*secondary.PersonRecord
	order      []string
	getErr     error
	getErrByID map[string]error // fail lookups for specific ids only
	listErr    error
}

func newMockPersonRepository() *mockPersonRepository {
	return &mockPersonRepository{persons: make(map[string]*secondary.PersonRecord)}
}

func (m *mockPersonRepository) Create(ctx context.Context, p *secondary.PersonRecord) error {
	m.persons[p.PublicID] = p
	m.order = append(m.order, p.PublicID)
	return nil
}

func (m *mockPersonRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.PersonRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if err, ok := m.getErrByID[publicID]; ok {
		return nil, err
	}
	if p, ok := m.persons[publicID]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("person %s: %w", publicID, secondary.ErrNotFound)
}

func (m *mockPersonRepository) List(ctx context.Context) ([]*secondary.PersonRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.PersonRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.persons[id])
	}
	return out, nil
}

// seedPerson adds a person to the mock and returns its id.
func (m *mockPersonRepository) seedPerson(publicID string) string {
	m.persons[publicID] = &secondary.PersonRecord{
		PublicID:     publicID,
		FirstName:    "Test",
		LastName:     publicID,
		SourceFormat: "name",
	}
	m.order = append(m.order, publicID)
	return publicID
}

// mockGiftRepository implements secondary.GiftRepository for testing.
// Claim mirrors the sqlite adapter's conditional-write semantics so
// concurrency tests exercise the same serialization point.
type mockGiftRepository struct {
	mu          sync.Mutex
	gifts       map[string]*secondary.GiftRecord
	createErr   error
	getErr      error
	claimErr    error
	beforeClaim func() // runs before the conditional write, for interleaving
}

func newMockGiftRepository() *mockGiftRepository {
	return &mockGiftRepository{gifts: make(map[string]*secondary.GiftRecord)}
}

func (m *mockGiftRepository) Create(ctx context.Context, g *secondary.GiftRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gifts[g.PublicID] = g
	return nil
}

func (m *mockGiftRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.GiftRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.gifts[publicID]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, fmt.Errorf("gift %s: %w", publicID, secondary.ErrNotFound)
}

func (m *mockGiftRepository) List(ctx context.Context, filters secondary.GiftFilters) ([]*secondary.GiftRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.GiftRecord
	for _, g := range m.gifts {
		if filters.OwnerID != "" && g.OwnerID != filters.OwnerID {
			continue
		}
		if filters.ApplicantID != "" && g.ApplicantID != filters.ApplicantID {
			continue
		}
		if filters.OrderID != "" && g.OrderID != filters.OrderID {
			continue
		}
		if filters.Unclaimed && g.ApplicantID != "" {
			continue
		}
		copied := *g
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockGiftRepository) Claim(ctx context.Context, giftPublicID, applicantPublicID, orderPublicID string) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	if m.beforeClaim != nil {
		m.beforeClaim()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.gifts[giftPublicID]
	if !ok {
		return false, nil
	}
	if g.ApplicantID == "" && g.OrderID == "" {
		g.ApplicantID = applicantPublicID
		g.OrderID = orderPublicID
		return true, nil
	}
	if g.ApplicantID == applicantPublicID && g.OrderID == orderPublicID {
		return true, nil
	}
	return false, nil
}

func (m *mockGiftRepository) OwnerHasGift(ctx context.Context, ownerPublicID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.gifts {
		if g.OwnerID == ownerPublicID {
			return true, nil
		}
	}
	return false, nil
}

// seedGift adds an unclaimed gift to the mock.
func (m *mockGiftRepository) seedGift(publicID, ownerID string) {
	m.gifts[publicID] = &secondary.GiftRecord{PublicID: publicID, OwnerID: ownerID}
}

// mockOrderRepository implements secondary.OrderRepository for testing.
// MarkComplete mirrors the sqlite adapter's conditional flip.
type mockOrderRepository struct {
	mu        sync.Mutex
	orders    map[string]*secondary.OrderRecord
	createErr error
	getErr    error
	markErr   error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*secondary.OrderRecord)}
}

func (m *mockOrderRepository) Create(ctx context.Context, o *secondary.OrderRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *o
	m.orders[o.PublicID] = &copied
	return nil
}

func (m *mockOrderRepository) GetByPublicID(ctx context.Context, publicID string) (*secondary.OrderRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[publicID]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, fmt.Errorf("order %s: %w", publicID, secondary.ErrNotFound)
}

func (m *mockOrderRepository) GetByOrderCode(ctx context.Context, orderCode string) (*secondary.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderCode == orderCode {
			copied := *o
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("order code %s: %w", orderCode, secondary.ErrNotFound)
}

func (m *mockOrderRepository) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.OrderRecord
	for _, o := range m.orders {
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockOrderRepository) MarkComplete(ctx context.Context, publicID, approverPublicID string, at time.Time) (bool, error) {
	if m.markErr != nil {
		return false, m.markErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[publicID]
	if !ok || o.Status != "PENDING" {
		return false, nil
	}
	o.Status = "COMPLETE"
	o.ConfirmedByID = approverPublicID
	o.ConfirmedAt = at.UTC().Format(time.RFC3339)
	return true, nil
}

// mockAuditWriter implements secondary.AuditRepository for testing.
type mockAuditWriter struct {
	mu     sync.Mutex
	events []*secondary.AuditRecord
}

func (m *mockAuditWriter) LogEvent(ctx context.Context, entityType, entityID, kind, message string, needsReconciliation bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, &secondary.AuditRecord{
		EntityType:          entityType,
		EntityID:            entityID,
		Kind:                kind,
		Message:             message,
		NeedsReconciliation: needsReconciliation,
	})
	return nil
}

func (m *mockAuditWriter) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.AuditRecord
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if filters.EntityID != "" && e.EntityID != filters.EntityID {
			continue
		}
		if filters.NeedsReconciliation && !e.NeedsReconciliation {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// eventsOfKind returns the recorded events of a given kind.
func (m *mockAuditWriter) eventsOfKind(kind string) []*secondary.AuditRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*secondary.AuditRecord
	for _, e := range m.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// sequentialIDs returns a newID func yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
