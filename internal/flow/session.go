package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/giftdesk/internal/core/order"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// Session wires the four slices of one order flow together and drives
// the order workflow on submission. The slices validate locally; the
// workflow re-checks everything server-side, and the session folds the
// authoritative outcome back into the status slice.
type Session struct {
	Applicant *Store[ApplicantState, ApplicantAction]
	Bundle    *Store[BundleState, BundleAction]
	Approver  *Store[ApproverState, ApproverAction]
	Status    *Store[StatusState, StatusAction]

	orders primary.OrderService
}

// NewSession creates an isolated flow session. audit and snaps may be
// nil; the approver slice's self-approval rule follows the applicant
// slice's current selection.
func NewSession(orders primary.OrderService, audit secondary.AuditWriter, snaps *SnapshotStore) *Session {
	s := &Session{orders: orders}
	s.Applicant = NewApplicantStore(audit, snaps)
	s.Bundle = NewBundleStore(audit, snaps)
	s.Approver = NewApproverStore(audit, snaps, func() string {
		return s.Applicant.State().SelectedID
	})
	s.Status = NewStatusStore(audit, snaps)
	return s
}

// Submit creates a PENDING order from the selected applicant and
// bundle, recording it in the status slice. It returns the new order's
// publicId.
func (s *Session) Submit(ctx context.Context, orderCode, confirmationCode string) (string, error) {
	applicant, ok := s.Applicant.State().Selected().Get()
	if !ok {
		return "", errors.New("no applicant selected")
	}
	bundle := s.Bundle.State().Bundle
	if len(bundle) == 0 {
		return "", order.ErrEmptyBundle
	}

	resp, err := s.orders.CreateOrder(ctx, primary.CreateOrderRequest{
		ApplicantPublicID: applicant.PublicID,
		GiftPublicIDs:     bundle,
		OrderCode:         orderCode,
		ConfirmationCode:  confirmationCode,
	})
	if err != nil {
		return "", err
	}

	if r := s.Status.Dispatch(OrderSubmitted{OrderPublicID: resp.OrderPublicID, OrderCode: orderCode}); r.IsErr() {
		return resp.OrderPublicID, fmt.Errorf("order %s created but flow state is stale: %w", resp.OrderPublicID, r.Err())
	}
	return resp.OrderPublicID, nil
}

// Confirm confirms the submitted order with the selected approver and
// folds the outcome into the status slice. A *order.PartialClaimFailure
// marks the status slice as needing reconciliation and is returned to
// the caller; it must not be treated as success.
func (s *Session) Confirm(ctx context.Context) error {
	orderID, ok := s.Status.State().CurrentOrder().Get()
	if !ok {
		return errors.New("no order has been submitted")
	}
	approver, ok := s.Approver.State().Selected().Get()
	if !ok {
		return errors.New("no approver selected")
	}

	_, err := s.orders.ConfirmOrder(ctx, orderID, approver.PublicID)
	if err != nil {
		var pcf *order.PartialClaimFailure
		if errors.As(err, &pcf) {
			s.Status.Dispatch(OrderFlagged{FailedGiftIDs: pcf.Failed})
		}
		return err
	}

	if r := s.Status.Dispatch(OrderConfirmed{}); r.IsErr() {
		return fmt.Errorf("order confirmed but flow state is stale: %w", r.Err())
	}
	return nil
}
