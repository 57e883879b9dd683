package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/giftdesk/internal/core/claim"
	"github.com/example/giftdesk/internal/core/order"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// OrderServiceImpl implements the OrderService interface. It is the
// saga driver for the order aggregate: pure rules live in core/order
// and core/claim, conditional writes live in the repositories, and
// this service sequences them and records per-step outcomes.
type OrderServiceImpl struct {
	orderRepo  secondary.OrderRepository
	giftRepo   secondary.GiftRepository
	personRepo secondary.PersonRepository
	audit      secondary.AuditWriter
	notifier   *ConfirmationNotifier // optional

	now   func() time.Time
	newID func() string
}

// NewOrderService creates a new OrderService with injected
// dependencies. notifier may be nil when confirmation emails are not
// configured.
func NewOrderService(
	orderRepo secondary.OrderRepository,
	giftRepo secondary.GiftRepository,
	personRepo secondary.PersonRepository,
	audit secondary.AuditWriter,
	notifier *ConfirmationNotifier,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo:  orderRepo,
		giftRepo:   giftRepo,
		personRepo: personRepo,
		audit:      audit,
		notifier:   notifier,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// CreateOrder validates the bundle and persists a PENDING order.
// The referenced gifts are not mutated: a gift only becomes claimed
// when the order is confirmed, so an abandoned order never locks a
// gift.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req primary.CreateOrderRequest) (*primary.CreateOrderResponse, error) {
	if req.ApplicantPublicID == "" {
		return nil, &ValidationError{Field: "applicant", Msg: "applicant publicId is required"}
	}
	if req.OrderCode == "" {
		return nil, &ValidationError{Field: "orderCode", Msg: "order code is required"}
	}
	if req.ConfirmationCode == "" {
		return nil, &ValidationError{Field: "confirmationCode", Msg: "confirmation code is required"}
	}

	applicantRec, err := s.personRepo.GetByPublicID(ctx, req.ApplicantPublicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("applicant %s: %w", req.ApplicantPublicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve applicant: %w", err)
	}
	applicant := recordToPerson(applicantRec)

	gifts := make([]models.Gift, 0, len(req.GiftPublicIDs))
	for _, giftID := range req.GiftPublicIDs {
		rec, err := s.giftRepo.GetByPublicID(ctx, giftID)
		if err != nil {
			if errors.Is(err, secondary.ErrNotFound) {
				return nil, fmt.Errorf("gift %s: %w", giftID, secondary.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to resolve gift %s: %w", giftID, err)
		}
		gifts = append(gifts, recordToGift(rec))
	}

	o, err := order.New(s.newID(), applicant, gifts, req.OrderCode, req.ConfirmationCode).Unpack()
	if err != nil {
		return nil, err
	}

	rec := orderToRecord(o)
	if err := s.orderRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logEvent(ctx, "order", o.PublicID, secondary.AuditKindOrderCreated,
		fmt.Sprintf("order %s created by %s with %d gifts", o.OrderCode, applicant.PublicID, len(o.GiftIDs)), false)

	if s.notifier != nil {
		// Delivery problems must not fail the order.
		_ = s.notifier.OrderCreated(ctx, o, applicant)
	}

	created, err := s.orderRepo.GetByPublicID(ctx, o.PublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created order: %w", err)
	}

	return &primary.CreateOrderResponse{
		OrderPublicID: o.PublicID,
		Order:         recordToOrderView(created),
	}, nil
}

// ConfirmOrder performs the confirmation saga: validate against the
// pure rules, flip PENDING to COMPLETE with one conditional write,
// then claim each gift in the bundle. The status flip happens strictly
// before any gift write, so a reader can observe a COMPLETE order
// whose gifts are still being claimed. If any gift cannot be claimed
// the order stays COMPLETE and a *order.PartialClaimFailure is
// returned naming the exceptions; callers must treat it as requiring
// manual reconciliation, never as success.
func (s *OrderServiceImpl) ConfirmOrder(ctx context.Context, orderPublicID, approverPublicID string) (*primary.Order, error) {
	rec, err := s.orderRepo.GetByPublicID(ctx, orderPublicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			// Missing and already-confirmed collapse into one answer
			// for untrusted QR-based callers.
			return nil, order.ErrAlreadyConfirmedOrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	approverRec, err := s.personRepo.GetByPublicID(ctx, approverPublicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("approver %s: %w", approverPublicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve approver: %w", err)
	}
	approver := recordToPerson(approverRec)

	current, err := recordToOrder(rec)
	if err != nil {
		return nil, err
	}

	now := s.now()
	confirmed, err := order.Confirm(current, approver, now).Unpack()
	if err != nil {
		return nil, err
	}

	// The applicant is resolved before the flip: every read that can
	// fail transiently happens while the order is still PENDING, so a
	// failure here leaves a retryable order instead of a COMPLETE one
	// whose gifts were never claimed.
	applicantRec, err := s.personRepo.GetByPublicID(ctx, confirmed.ApplicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve applicant %s: %w", confirmed.ApplicantID, err)
	}
	applicant := recordToPerson(applicantRec)

	// The authoritative check: the flip only applies while the row is
	// still PENDING, so two concurrent confirmations serialize here.
	flipped, err := s.orderRepo.MarkComplete(ctx, orderPublicID, approver.PublicID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order complete: %w", err)
	}
	if !flipped {
		return nil, order.ErrAlreadyConfirmedOrNotFound
	}

	var claimed, failed, reasons []string
	for _, giftID := range confirmed.GiftIDs {
		if err := s.claimGift(ctx, giftID, applicant, confirmed); err != nil {
			failed = append(failed, giftID)
			reasons = append(reasons, err.Error())
			continue
		}
		claimed = append(claimed, giftID)
	}

	if len(failed) > 0 {
		pcf := &order.PartialClaimFailure{
			OrderID: confirmed.PublicID,
			Claimed: claimed,
			Failed:  failed,
		}
		s.logEvent(ctx, "order", confirmed.PublicID, secondary.AuditKindPartialClaim,
			fmt.Sprintf("%s: %s", pcf.Error(), strings.Join(reasons, "; ")), true)
		return nil, pcf
	}

	s.logEvent(ctx, "order", confirmed.PublicID, secondary.AuditKindOrderConfirmed,
		fmt.Sprintf("order %s confirmed by %s", confirmed.OrderCode, approver.PublicID), false)

	final, err := s.orderRepo.GetByPublicID(ctx, orderPublicID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch confirmed order: %w", err)
	}
	return recordToOrderView(final), nil
}

// claimGift claims a single gift for the confirmed order. ApplyClaim
// is the mandatory in-process mutation point; the repository Claim is
// the conditional write that makes the check hold under concurrency.
func (s *OrderServiceImpl) claimGift(ctx context.Context, giftID string, applicant models.Person, o models.Order) error {
	rec, err := s.giftRepo.GetByPublicID(ctx, giftID)
	if err != nil {
		return fmt.Errorf("failed to fetch gift %s: %w", giftID, err)
	}

	g, err := claim.ApplyClaim(recordToGift(rec), applicant, o).Unpack()
	if err != nil {
		return err
	}

	ok, err := s.giftRepo.Claim(ctx, g.PublicID, g.ApplicantID, g.OrderID)
	if err != nil {
		return fmt.Errorf("failed to claim gift %s: %w", giftID, err)
	}
	if !ok {
		// Lost the row to a concurrently confirmed order. Re-fetch so
		// the conflict names the claim that won; if the re-read fails
		// too, report the conflict with just the gift.
		conflict := &claim.AlreadyClaimedError{GiftID: giftID}
		if winner, err := s.giftRepo.GetByPublicID(ctx, giftID); err == nil {
			conflict.HolderID = winner.ApplicantID
			conflict.HeldByID = winner.OrderID
		}
		return conflict
	}
	return nil
}

// GetOrder retrieves an order by publicId. Lookups resolve via the
// publicId only; internal keys are never accepted from callers.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, publicID string) (*primary.Order, error) {
	rec, err := s.orderRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", publicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return recordToOrderView(rec), nil
}

// GetOrderByCode retrieves an order by its business-level code.
func (s *OrderServiceImpl) GetOrderByCode(ctx context.Context, orderCode string) (*primary.Order, error) {
	rec, err := s.orderRepo.GetByOrderCode(ctx, orderCode)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("order code %s: %w", orderCode, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return recordToOrderView(rec), nil
}

// ListOrders lists orders with optional filters.
func (s *OrderServiceImpl) ListOrders(ctx context.Context, filters primary.OrderFilters) ([]*primary.Order, error) {
	recs, err := s.orderRepo.List(ctx, secondary.OrderFilters{Status: filters.Status, Limit: filters.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	views := make([]*primary.Order, 0, len(recs))
	for _, rec := range recs {
		views = append(views, recordToOrderView(rec))
	}
	return views, nil
}

// Reconcile reports every gift of a COMPLETE order whose stored claim
// contradicts the order. These are the rows a PartialClaimFailure left
// behind, awaiting manual correction.
func (s *OrderServiceImpl) Reconcile(ctx context.Context) ([]*primary.ReconciliationRow, error) {
	recs, err := s.orderRepo.List(ctx, secondary.OrderFilters{Status: models.OrderStatusComplete})
	if err != nil {
		return nil, fmt.Errorf("failed to list complete orders: %w", err)
	}

	var rows []*primary.ReconciliationRow
	for _, rec := range recs {
		for _, giftID := range rec.GiftIDs {
			g, err := s.giftRepo.GetByPublicID(ctx, giftID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch gift %s: %w", giftID, err)
			}
			if g.ApplicantID == rec.ApplicantID && g.OrderID == rec.PublicID {
				continue
			}
			rows = append(rows, &primary.ReconciliationRow{
				OrderPublicID:   rec.PublicID,
				GiftPublicID:    giftID,
				WantApplicantID: rec.ApplicantID,
				GotApplicantID:  g.ApplicantID,
				GotOrderID:      g.OrderID,
			})
		}
	}
	return rows, nil
}

// logEvent writes an audit entry, swallowing failures: the audit trail
// is side-effect only and must never block the workflow.
func (s *OrderServiceImpl) logEvent(ctx context.Context, entityType, entityID, kind, message string, needsReconciliation bool) {
	if s.audit == nil {
		return
	}
	_ = s.audit.LogEvent(ctx, entityType, entityID, kind, message, needsReconciliation)
}
