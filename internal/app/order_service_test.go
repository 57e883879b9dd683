package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/giftdesk/internal/core/order"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

type orderFixture struct {
	svc     *OrderServiceImpl
	orders  *mockOrderRepository
	gifts   *mockGiftRepository
	persons *mockPersonRepository
	audit   *mockAuditWriter
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:  newMockOrderRepository(),
		gifts:   newMockGiftRepository(),
		persons: newMockPersonRepository(),
		audit:   &mockAuditWriter{},
	}
	f.svc = NewOrderService(f.orders, f.gifts, f.persons, f.audit, nil)
	f.svc.now = func() time.Time { return time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC) }
	f.svc.newID = sequentialIDs("O")
	return f
}

func (f *orderFixture) createOrder(t *testing.T, applicant string, giftIDs ...string) *primary.CreateOrderResponse {
	t.Helper()
	resp, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
		ApplicantPublicID: applicant,
		GiftPublicIDs:     giftIDs,
		OrderCode:         "CODE-" + applicant,
		ConfirmationCode:  "RQ-" + applicant,
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return resp
}

func TestCreateOrder(t *testing.T) {
	t.Run("creates a pending order without touching gifts", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.gifts.seedGift("G-1", "P-OWNER")

		resp := f.createOrder(t, "P-APP", "G-1")

		if resp.Order.Status != "PENDING" {
			t.Errorf("status = %s, want PENDING", resp.Order.Status)
		}
		if resp.Order.ApplicantID != "P-APP" {
			t.Errorf("applicant = %s, want P-APP", resp.Order.ApplicantID)
		}

		// A gift referenced by a PENDING order is not yet claimed.
		g, err := f.gifts.GetByPublicID(context.Background(), "G-1")
		if err != nil {
			t.Fatal(err)
		}
		if g.ApplicantID != "" || g.OrderID != "" {
			t.Errorf("pending order must not mutate gifts, got %+v", g)
		}

		if len(f.audit.eventsOfKind(secondary.AuditKindOrderCreated)) != 1 {
			t.Errorf("expected one order_created audit event")
		}
	})

	t.Run("fails on empty bundle", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-APP")

		_, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
			ApplicantPublicID: "P-APP",
			OrderCode:         "CODE-1",
			ConfirmationCode:  "RQ-1",
		})
		if !errors.Is(err, order.ErrEmptyBundle) {
			t.Errorf("error = %v, want ErrEmptyBundle", err)
		}
	})

	t.Run("fails on duplicate gift", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.gifts.seedGift("G-1", "P-OWNER")

		_, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
			ApplicantPublicID: "P-APP",
			GiftPublicIDs:     []string{"G-1", "G-1"},
			OrderCode:         "CODE-1",
			ConfirmationCode:  "RQ-1",
		})
		var dup *order.DuplicateGiftError
		if !errors.As(err, &dup) || dup.GiftID != "G-1" {
			t.Errorf("error = %v, want DuplicateGiftError for G-1", err)
		}
	})

	t.Run("fails when applicant is unknown", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
			ApplicantPublicID: "P-GHOST",
			GiftPublicIDs:     []string{"G-1"},
			OrderCode:         "CODE-1",
			ConfirmationCode:  "RQ-1",
		})
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("fails when a gift is unknown", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-APP")
		_, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
			ApplicantPublicID: "P-APP",
			GiftPublicIDs:     []string{"G-GHOST"},
			OrderCode:         "CODE-1",
			ConfirmationCode:  "RQ-1",
		})
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("rejects missing input fields", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.svc.CreateOrder(context.Background(), primary.CreateOrderRequest{
			GiftPublicIDs: []string{"G-1"},
		})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})
}

func TestConfirmOrder(t *testing.T) {
	t.Run("confirms and cascades the claim onto every gift", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		got, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APPROVER")
		if err != nil {
			t.Fatalf("ConfirmOrder failed: %v", err)
		}
		if got.Status != "COMPLETE" {
			t.Errorf("status = %s, want COMPLETE", got.Status)
		}
		if got.ConfirmedByID != "P-APPROVER" || got.ConfirmedAt == "" {
			t.Errorf("confirmation fields = %s at %q", got.ConfirmedByID, got.ConfirmedAt)
		}

		g, err := f.gifts.GetByPublicID(context.Background(), "G-1")
		if err != nil {
			t.Fatal(err)
		}
		if g.ApplicantID != "P-APP" || g.OrderID != created.OrderPublicID {
			t.Errorf("gift = %+v, want applicant P-APP and order %s", g, created.OrderPublicID)
		}
		// applicant set iff order set
		if (g.ApplicantID == "") != (g.OrderID == "") {
			t.Errorf("claim fields must be set together: %+v", g)
		}
	})

	t.Run("rejects self-approval", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		_, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APP")
		var sa *order.SelfApprovalError
		if !errors.As(err, &sa) {
			t.Fatalf("error = %v, want SelfApprovalError", err)
		}

		// The order must stay PENDING and the gift unclaimed.
		o, _ := f.orders.GetByPublicID(context.Background(), created.OrderPublicID)
		if o.Status != "PENDING" {
			t.Errorf("status after rejected confirm = %s, want PENDING", o.Status)
		}
	})

	t.Run("second confirmation fails cleanly", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		f.persons.seedPerson("P-OTHER")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		if _, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APPROVER"); err != nil {
			t.Fatalf("first confirm failed: %v", err)
		}
		_, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-OTHER")
		if !errors.Is(err, order.ErrAlreadyConfirmedOrNotFound) {
			t.Errorf("error = %v, want ErrAlreadyConfirmedOrNotFound", err)
		}

		// Claims must not be double-applied.
		g, _ := f.gifts.GetByPublicID(context.Background(), "G-1")
		if g.ApplicantID != "P-APP" || g.OrderID != created.OrderPublicID {
			t.Errorf("gift changed by failed re-confirm: %+v", g)
		}
	})

	t.Run("concurrent confirmations succeed at most once", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		f.persons.seedPerson("P-OTHER")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, approver := range []string{"P-APPROVER", "P-OTHER"} {
			wg.Add(1)
			go func(i int, approver string) {
				defer wg.Done()
				_, errs[i] = f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, approver)
			}(i, approver)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else if !errors.Is(err, order.ErrAlreadyConfirmedOrNotFound) {
				t.Errorf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Errorf("confirmations succeeded = %d, want exactly 1", succeeded)
		}
	})

	t.Run("unknown order reports already confirmed or not found", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-APPROVER")
		_, err := f.svc.ConfirmOrder(context.Background(), "O-GHOST", "P-APPROVER")
		if !errors.Is(err, order.ErrAlreadyConfirmedOrNotFound) {
			t.Errorf("error = %v, want ErrAlreadyConfirmedOrNotFound", err)
		}
	})

	t.Run("shared gift yields partial claim failure for the loser", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-B")
		f.persons.seedPerson("P-D")
		f.persons.seedPerson("P-C")
		f.gifts.seedGift("G-SHARED", "P-OWNER")

		// The same unclaimed gift is bundled into two pending orders.
		o1 := f.createOrder(t, "P-B", "G-SHARED")
		o2 := f.createOrder(t, "P-D", "G-SHARED")

		if _, err := f.svc.ConfirmOrder(context.Background(), o1.OrderPublicID, "P-C"); err != nil {
			t.Fatalf("confirming O1 failed: %v", err)
		}

		_, err := f.svc.ConfirmOrder(context.Background(), o2.OrderPublicID, "P-C")
		var pcf *order.PartialClaimFailure
		if !errors.As(err, &pcf) {
			t.Fatalf("error = %v, want PartialClaimFailure", err)
		}
		if len(pcf.Failed) != 1 || pcf.Failed[0] != "G-SHARED" {
			t.Errorf("failed gifts = %v, want [G-SHARED]", pcf.Failed)
		}

		// The gift belongs to the first confirmed order, untouched.
		g, _ := f.gifts.GetByPublicID(context.Background(), "G-SHARED")
		if g.ApplicantID != "P-B" || g.OrderID != o1.OrderPublicID {
			t.Errorf("gift = %+v, want claim by P-B / %s", g, o1.OrderPublicID)
		}

		// The losing order is COMPLETE in storage; only the flagged
		// audit entry records the anomaly.
		o, _ := f.orders.GetByPublicID(context.Background(), o2.OrderPublicID)
		if o.Status != "COMPLETE" {
			t.Errorf("losing order status = %s, want COMPLETE", o.Status)
		}
		flagged := f.audit.eventsOfKind(secondary.AuditKindPartialClaim)
		if len(flagged) != 1 || !flagged[0].NeedsReconciliation {
			t.Errorf("expected one reconciliation-flagged audit event, got %v", flagged)
		}
		// The flagged entry names the claim that won the gift.
		if msg := flagged[0].Message; !strings.Contains(msg, "P-B") || !strings.Contains(msg, o1.OrderPublicID) {
			t.Errorf("flagged message %q does not name the winning claim", msg)
		}
	})

	t.Run("claim lost mid-flight reports the winning claim", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		// The gift is snatched between the read and the conditional
		// write, so the write itself is what loses.
		f.gifts.beforeClaim = func() {
			f.gifts.beforeClaim = nil
			f.gifts.gifts["G-1"].ApplicantID = "P-X"
			f.gifts.gifts["G-1"].OrderID = "O-X"
		}

		_, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APPROVER")
		var pcf *order.PartialClaimFailure
		if !errors.As(err, &pcf) {
			t.Fatalf("error = %v, want PartialClaimFailure", err)
		}
		flagged := f.audit.eventsOfKind(secondary.AuditKindPartialClaim)
		if len(flagged) != 1 {
			t.Fatalf("flagged audit events = %d, want 1", len(flagged))
		}
		if msg := flagged[0].Message; !strings.Contains(msg, "P-X") || !strings.Contains(msg, "O-X") {
			t.Errorf("flagged message %q does not name the winning claim", msg)
		}
	})

	t.Run("transient applicant lookup failure leaves the order retryable", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-OWNER")
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		f.gifts.seedGift("G-1", "P-OWNER")
		created := f.createOrder(t, "P-APP", "G-1")

		// Only the applicant lookup fails; the approver resolves fine.
		f.persons.getErrByID = map[string]error{"P-APP": errors.New("connection reset")}

		_, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APPROVER")
		if err == nil {
			t.Fatal("expected ConfirmOrder to fail")
		}

		// The failure happened before the status flip, so nothing is
		// half-done: order PENDING, gift unclaimed, no flagged audit.
		o, _ := f.orders.GetByPublicID(context.Background(), created.OrderPublicID)
		if o.Status != "PENDING" {
			t.Errorf("status after failed confirm = %s, want PENDING", o.Status)
		}
		g, _ := f.gifts.GetByPublicID(context.Background(), "G-1")
		if g.ApplicantID != "" || g.OrderID != "" {
			t.Errorf("gift mutated by failed confirm: %+v", g)
		}
		if n := len(f.audit.eventsOfKind(secondary.AuditKindPartialClaim)); n != 0 {
			t.Errorf("flagged audit events = %d, want 0", n)
		}

		// Once the lookup recovers, a plain retry completes the order.
		f.persons.getErrByID = nil
		got, err := f.svc.ConfirmOrder(context.Background(), created.OrderPublicID, "P-APPROVER")
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if got.Status != "COMPLETE" {
			t.Errorf("status after retry = %s, want COMPLETE", got.Status)
		}
		g, _ = f.gifts.GetByPublicID(context.Background(), "G-1")
		if g.ApplicantID != "P-APP" || g.OrderID != created.OrderPublicID {
			t.Errorf("gift after retry = %+v", g)
		}
	})

	t.Run("surfaces a malformed confirmed_at instead of discarding it", func(t *testing.T) {
		f := newOrderFixture()
		f.persons.seedPerson("P-APP")
		f.persons.seedPerson("P-APPROVER")
		if err := f.orders.Create(context.Background(), &secondary.OrderRecord{
			PublicID:         "O-BAD",
			OrderCode:        "CODE-BAD",
			ApplicantID:      "P-APP",
			GiftIDs:          []string{"G-1"},
			ConfirmationCode: "RQ-BAD",
			ConfirmedAt:      "not-a-timestamp",
			Status:           "PENDING",
		}); err != nil {
			t.Fatal(err)
		}

		_, err := f.svc.ConfirmOrder(context.Background(), "O-BAD", "P-APPROVER")
		if err == nil || !strings.Contains(err.Error(), "malformed confirmed_at") {
			t.Errorf("error = %v, want malformed confirmed_at", err)
		}
		o, _ := f.orders.GetByPublicID(context.Background(), "O-BAD")
		if o.Status != "PENDING" {
			t.Errorf("status = %s, want PENDING", o.Status)
		}
	})
}

func TestGetOrder(t *testing.T) {
	f := newOrderFixture()
	f.persons.seedPerson("P-OWNER")
	f.persons.seedPerson("P-APP")
	f.gifts.seedGift("G-1", "P-OWNER")
	created := f.createOrder(t, "P-APP", "G-1")

	got, err := f.svc.GetOrder(context.Background(), created.OrderPublicID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got.Status != "PENDING" || got.PublicID != created.OrderPublicID {
		t.Errorf("order = %+v", got)
	}

	if _, err := f.svc.GetOrder(context.Background(), "O-GHOST"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestReconcile(t *testing.T) {
	f := newOrderFixture()
	f.persons.seedPerson("P-OWNER")
	f.persons.seedPerson("P-B")
	f.persons.seedPerson("P-D")
	f.persons.seedPerson("P-C")
	f.gifts.seedGift("G-SHARED", "P-OWNER")

	o1 := f.createOrder(t, "P-B", "G-SHARED")
	o2 := f.createOrder(t, "P-D", "G-SHARED")

	if _, err := f.svc.ConfirmOrder(context.Background(), o1.OrderPublicID, "P-C"); err != nil {
		t.Fatalf("confirming O1 failed: %v", err)
	}
	var pcf *order.PartialClaimFailure
	if _, err := f.svc.ConfirmOrder(context.Background(), o2.OrderPublicID, "P-C"); !errors.As(err, &pcf) {
		t.Fatalf("expected PartialClaimFailure, got %v", err)
	}

	rows, err := f.svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.OrderPublicID != o2.OrderPublicID || row.GiftPublicID != "G-SHARED" {
		t.Errorf("row = %+v", row)
	}
	if row.WantApplicantID != "P-D" || row.GotApplicantID != "P-B" {
		t.Errorf("row = %+v, want P-D expected / P-B actual", row)
	}
}
