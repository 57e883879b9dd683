package flow

import (
	"errors"
	"fmt"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
	"github.com/example/giftdesk/internal/result"
)

const sliceBundle = "bundle"

// MaxBundleSize is the most gifts one order may carry.
const MaxBundleSize = 5

// BundleState is the gift-selection slice: the available gift list and
// the publicIds currently bundled, in selection order.
type BundleState struct {
	GiftList []models.Gift
	Bundle   []string
}

// BundleAction is the closed action union of the bundle slice.
type BundleAction interface {
	isBundleAction()
}

// SetGiftList replaces the available gift list.
type SetGiftList struct {
	Gifts []models.Gift
}

// AddGift appends a gift to the bundle.
type AddGift struct {
	PublicID string
}

// RemoveGift takes a gift out of the bundle.
type RemoveGift struct {
	PublicID string
}

// ClearBundle empties the bundle.
type ClearBundle struct{}

func (SetGiftList) isBundleAction() {}
func (AddGift) isBundleAction()     {}
func (RemoveGift) isBundleAction()  {}
func (ClearBundle) isBundleAction() {}

// BundleReducer computes the next gift-selection state.
func BundleReducer(state BundleState, action BundleAction) result.Result[BundleState] {
	switch a := action.(type) {
	case SetGiftList:
		state.GiftList = a.Gifts
		state.Bundle = nil
		return result.Ok(state)
	case AddGift:
		state.Bundle = append(append([]string(nil), state.Bundle...), a.PublicID)
		return result.Ok(state)
	case RemoveGift:
		kept := make([]string, 0, len(state.Bundle))
		for _, id := range state.Bundle {
			if id != a.PublicID {
				kept = append(kept, id)
			}
		}
		state.Bundle = kept
		return result.Ok(state)
	case ClearBundle:
		state.Bundle = nil
		return result.Ok(state)
	default:
		return result.Err[BundleState](&UnknownActionError{Slice: sliceBundle, Action: fmt.Sprintf("%T", action)})
	}
}

func bundleRules() []Rule[BundleState, BundleAction] {
	return []Rule[BundleState, BundleAction]{
		func(action BundleAction, state BundleState) error {
			add, ok := action.(AddGift)
			if !ok {
				return nil
			}
			if add.PublicID == "" {
				return errors.New("gift publicId is required")
			}
			if !giftInList(state.GiftList, add.PublicID) {
				return fmt.Errorf("gift %s is not in the gift list", add.PublicID)
			}
			for _, id := range state.Bundle {
				if id == add.PublicID {
					return fmt.Errorf("gift %s is already in the bundle", add.PublicID)
				}
			}
			if len(state.Bundle) >= MaxBundleSize {
				return fmt.Errorf("bundle is full (max %d gifts)", MaxBundleSize)
			}
			return nil
		},
		func(action BundleAction, state BundleState) error {
			rm, ok := action.(RemoveGift)
			if !ok {
				return nil
			}
			for _, id := range state.Bundle {
				if id == rm.PublicID {
					return nil
				}
			}
			return fmt.Errorf("gift %s is not in the bundle", rm.PublicID)
		},
	}
}

// Gift returns the listed gift with the given publicId, or None.
func (s BundleState) Gift(publicID string) maybe.Maybe[models.Gift] {
	if publicID == "" {
		return maybe.None[models.Gift]()
	}
	for _, g := range s.GiftList {
		if g.PublicID == publicID {
			return maybe.Some(g)
		}
	}
	return maybe.None[models.Gift]()
}

// BundledGifts resolves the bundle to gift records, in selection order.
func (s BundleState) BundledGifts() []models.Gift {
	gifts := make([]models.Gift, 0, len(s.Bundle))
	for _, id := range s.Bundle {
		if g, ok := s.Gift(id).Get(); ok {
			gifts = append(gifts, g)
		}
	}
	return gifts
}

// NewBundleStore builds the gift-selection slice with the standard
// middleware chain. audit and snaps may be nil.
func NewBundleStore(audit secondary.AuditWriter, snaps *SnapshotStore) *Store[BundleState, BundleAction] {
	return NewStore(BundleState{}, BundleReducer,
		Logging[BundleState, BundleAction](sliceBundle, audit),
		Validation(bundleRules()...),
		Persist[BundleState, BundleAction](snaps, sliceBundle, func(s BundleState) any {
			return struct {
				Bundle []string `json:"bundle"`
			}{Bundle: s.Bundle}
		}),
	)
}

func giftInList(gifts []models.Gift, publicID string) bool {
	for _, g := range gifts {
		if g.PublicID == publicID {
			return true
		}
	}
	return false
}
