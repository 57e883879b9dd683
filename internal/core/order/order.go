// Package order contains the pure business logic for the order
// aggregate: bundle validation at creation and the confirmation
// transition. Storage effects live in the app service; everything here
// operates on in-memory values only.
package order

import (
	"time"

	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/result"
)

// New validates a gift bundle and returns a PENDING order for it.
// Fails with ErrEmptyBundle when gifts is empty and DuplicateGiftError
// when the bundle references the same gift twice. The referenced gifts
// are not touched: a gift is only marked claimed when the order is
// confirmed.
func New(publicID string, applicant models.Person, gifts []models.Gift, orderCode, confirmationCode string) result.Result[models.Order] {
	if len(gifts) == 0 {
		return result.Err[models.Order](ErrEmptyBundle)
	}

	seen := make(map[string]bool, len(gifts))
	giftIDs := make([]string, 0, len(gifts))
	for _, g := range gifts {
		if seen[g.PublicID] {
			return result.Err[models.Order](&DuplicateGiftError{GiftID: g.PublicID})
		}
		seen[g.PublicID] = true
		giftIDs = append(giftIDs, g.PublicID)
	}

	return result.Ok(models.Order{
		PublicID:         publicID,
		OrderCode:        orderCode,
		ApplicantID:      applicant.PublicID,
		GiftIDs:          giftIDs,
		ConfirmationCode: confirmationCode,
		Status:           models.OrderStatusPending,
	})
}

// Confirm applies the PENDING to COMPLETE transition. Fails with
// SelfApprovalError when the approver is the order's applicant, and
// with ErrAlreadyConfirmedOrNotFound when the order is not PENDING.
// The caller must still perform the status flip against storage as a
// single conditional write; this function only validates and computes
// the confirmed value.
func Confirm(o models.Order, approver models.Person, at time.Time) result.Result[models.Order] {
	if approver.PublicID == o.ApplicantID {
		return result.Err[models.Order](&SelfApprovalError{PersonID: approver.PublicID})
	}
	if o.Status != models.OrderStatusPending {
		return result.Err[models.Order](ErrAlreadyConfirmedOrNotFound)
	}

	o.Status = models.OrderStatusComplete
	o.ConfirmedByID = approver.PublicID
	o.ConfirmedAt = at
	return result.Ok(o)
}
