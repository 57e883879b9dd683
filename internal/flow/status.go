package flow

import (
	"fmt"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
	"github.com/example/giftdesk/internal/result"
)

const sliceStatus = "status"

// StatusState is the order-status slice: the submitted order, its
// server-side status as last observed, and any gifts the confirmation
// could not claim. FailedGiftIDs non-empty means the order completed
// with a consistency anomaly and needs manual reconciliation; it must
// never be rendered as a plain success.
type StatusState struct {
	OrderPublicID string
	OrderCode     string
	Status        string
	FailedGiftIDs []string
}

// StatusAction is the closed action union of the status slice.
type StatusAction interface {
	isStatusAction()
}

// OrderSubmitted records a newly created PENDING order.
type OrderSubmitted struct {
	OrderPublicID string
	OrderCode     string
}

// OrderConfirmed records a clean PENDING to COMPLETE transition.
type OrderConfirmed struct{}

// OrderFlagged records a confirmation that completed the order but
// failed to claim the named gifts.
type OrderFlagged struct {
	FailedGiftIDs []string
}

// ResetOrder returns the slice to its initial state for a new flow.
type ResetOrder struct{}

func (OrderSubmitted) isStatusAction() {}
func (OrderConfirmed) isStatusAction() {}
func (OrderFlagged) isStatusAction()   {}
func (ResetOrder) isStatusAction()     {}

// StatusReducer computes the next order-status state. Transitions
// mirror the order lifecycle: submit only from the initial state,
// confirm or flag only from PENDING, no path back from COMPLETE except
// a full reset.
func StatusReducer(state StatusState, action StatusAction) result.Result[StatusState] {
	switch a := action.(type) {
	case OrderSubmitted:
		if state.Status != "" {
			return result.Err[StatusState](fmt.Errorf("cannot submit: order %s is already %s", state.OrderPublicID, state.Status))
		}
		return result.Ok(StatusState{
			OrderPublicID: a.OrderPublicID,
			OrderCode:     a.OrderCode,
			Status:        models.OrderStatusPending,
		})
	case OrderConfirmed:
		if state.Status != models.OrderStatusPending {
			return result.Err[StatusState](fmt.Errorf("cannot confirm: order status is %q, want PENDING", state.Status))
		}
		state.Status = models.OrderStatusComplete
		return result.Ok(state)
	case OrderFlagged:
		if state.Status != models.OrderStatusPending {
			return result.Err[StatusState](fmt.Errorf("cannot flag: order status is %q, want PENDING", state.Status))
		}
		state.Status = models.OrderStatusComplete
		state.FailedGiftIDs = a.FailedGiftIDs
		return result.Ok(state)
	case ResetOrder:
		return result.Ok(StatusState{})
	default:
		return result.Err[StatusState](&UnknownActionError{Slice: sliceStatus, Action: fmt.Sprintf("%T", action)})
	}
}

// CurrentOrder returns the submitted order's publicId, or None before
// submission.
func (s StatusState) CurrentOrder() maybe.Maybe[string] {
	if s.OrderPublicID == "" {
		return maybe.None[string]()
	}
	return maybe.Some(s.OrderPublicID)
}

// NeedsReconciliation reports whether the confirmation left gifts
// unclaimed.
func (s StatusState) NeedsReconciliation() bool {
	return len(s.FailedGiftIDs) > 0
}

// NewStatusStore builds the order-status slice. The snapshot excludes
// nothing: every field here is durable flow state.
func NewStatusStore(audit secondary.AuditWriter, snaps *SnapshotStore) *Store[StatusState, StatusAction] {
	return NewStore(StatusState{}, StatusReducer,
		Logging[StatusState, StatusAction](sliceStatus, audit),
		Persist[StatusState, StatusAction](snaps, sliceStatus, func(s StatusState) any {
			return s
		}),
	)
}
