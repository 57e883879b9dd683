package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBundle indicates an order was requested with no gifts.
var ErrEmptyBundle = errors.New("order bundle must contain at least one gift")

// ErrAlreadyConfirmedOrNotFound indicates a confirmation targeted an
// order that is either missing or no longer PENDING. The two cases are
// deliberately indistinguishable to external callers: the lookup comes
// from an untrusted QR scan and must not leak which one it was.
var ErrAlreadyConfirmedOrNotFound = errors.New("order already confirmed or not found")

// DuplicateGiftError indicates the same gift appeared twice in a bundle.
type DuplicateGiftError struct {
	GiftID string
}

func (e *DuplicateGiftError) Error() string {
	return fmt.Sprintf("gift %s appears more than once in the bundle", e.GiftID)
}

// SelfApprovalError indicates a person attempted to confirm their own
// order.
type SelfApprovalError struct {
	PersonID string
}

func (e *SelfApprovalError) Error() string {
	return fmt.Sprintf("person %s cannot approve their own order", e.PersonID)
}

// PartialClaimFailure reports a confirmation whose gift claim cascade
// did not fully succeed: the order is COMPLETE in storage but one or
// more of its gifts belong to another order. This is a consistency
// anomaly requiring manual reconciliation and must never be presented
// as plain success.
type PartialClaimFailure struct {
	OrderID string
	Claimed []string // gifts successfully bound to this order
	Failed  []string // gifts that could not be claimed
}

func (e *PartialClaimFailure) Error() string {
	return fmt.Sprintf("order %s confirmed but gifts [%s] could not be claimed; manual reconciliation required",
		e.OrderID, strings.Join(e.Failed, ", "))
}
