// Package claim contains the pure business logic for gift claims.
// These functions evaluate and apply claim transitions without side
// effects; the order workflow must route every gift mutation through
// ApplyClaim rather than assigning fields directly.
package claim

import (
	"fmt"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/result"
)

// AlreadyClaimedError indicates a gift is already bound to a different
// applicant or order.
type AlreadyClaimedError struct {
	GiftID    string
	HolderID  string // applicant currently holding the gift
	HeldByID  string // order currently holding the gift
}

func (e *AlreadyClaimedError) Error() string {
	if e.HolderID == "" && e.HeldByID == "" {
		return fmt.Sprintf("gift %s already claimed", e.GiftID)
	}
	return fmt.Sprintf("gift %s already claimed by %s (order %s)", e.GiftID, e.HolderID, e.HeldByID)
}

// FindUnclaimedGift returns the first gift owned by owner that has no
// applicant. Pure, O(n) over the given slice.
func FindUnclaimedGift(owner models.Person, gifts []models.Gift) maybe.Maybe[models.Gift] {
	for _, g := range gifts {
		if g.OwnerID == owner.PublicID && g.ApplicantID == "" {
			return maybe.Some(g)
		}
	}
	return maybe.None[models.Gift]()
}

// ApplyClaim binds a gift to an applicant and order, returning the
// updated gift. It fails with AlreadyClaimedError when the gift is held
// by a different applicant, or bound to a different order: an order
// reference, once set, may only be cleared by that order going away.
// Re-applying an identical claim succeeds, so retries are harmless.
func ApplyClaim(gift models.Gift, applicant models.Person, order models.Order) result.Result[models.Gift] {
	if gift.ApplicantID != "" && gift.ApplicantID != applicant.PublicID {
		return result.Err[models.Gift](&AlreadyClaimedError{
			GiftID:   gift.PublicID,
			HolderID: gift.ApplicantID,
			HeldByID: gift.OrderID,
		})
	}
	if gift.OrderID != "" && gift.OrderID != order.PublicID {
		return result.Err[models.Gift](&AlreadyClaimedError{
			GiftID:   gift.PublicID,
			HolderID: gift.ApplicantID,
			HeldByID: gift.OrderID,
		})
	}

	gift.ApplicantID = applicant.PublicID
	gift.OrderID = order.PublicID
	return result.Ok(gift)
}
