package flow

import (
	"errors"
	"fmt"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
	"github.com/example/giftdesk/internal/result"
)

const sliceApprover = "approver"

// ApproverState is the approver-selection slice.
type ApproverState struct {
	Candidates []models.Person
	SelectedID string
}

// ApproverAction is the closed action union of the approver slice.
type ApproverAction interface {
	isApproverAction()
}

// SetApproverCandidates replaces the candidate list.
type SetApproverCandidates struct {
	Candidates []models.Person
}

// SelectApprover marks one candidate as the acting approver.
type SelectApprover struct {
	PublicID string
}

// ClearApprover drops the current selection.
type ClearApprover struct{}

func (SetApproverCandidates) isApproverAction() {}
func (SelectApprover) isApproverAction()        {}
func (ClearApprover) isApproverAction()         {}

// ApproverReducer computes the next approver-selection state.
func ApproverReducer(state ApproverState, action ApproverAction) result.Result[ApproverState] {
	switch a := action.(type) {
	case SetApproverCandidates:
		state.Candidates = a.Candidates
		state.SelectedID = ""
		return result.Ok(state)
	case SelectApprover:
		state.SelectedID = a.PublicID
		return result.Ok(state)
	case ClearApprover:
		state.SelectedID = ""
		return result.Ok(state)
	default:
		return result.Err[ApproverState](&UnknownActionError{Slice: sliceApprover, Action: fmt.Sprintf("%T", action)})
	}
}

// approverRules validates approver selection. applicantID resolves the
// currently selected applicant at check time, so the self-approval
// guard follows the applicant slice as it changes.
func approverRules(applicantID func() string) []Rule[ApproverState, ApproverAction] {
	return []Rule[ApproverState, ApproverAction]{
		func(action ApproverAction, state ApproverState) error {
			sel, ok := action.(SelectApprover)
			if !ok {
				return nil
			}
			if sel.PublicID == "" {
				return errors.New("approver publicId is required")
			}
			if !personInList(state.Candidates, sel.PublicID) {
				return fmt.Errorf("person %s is not in the approver list", sel.PublicID)
			}
			if applicantID != nil && applicantID() == sel.PublicID {
				return errors.New("an applicant cannot approve their own order")
			}
			return nil
		},
	}
}

// Selected returns the selected approver, or None.
func (s ApproverState) Selected() maybe.Maybe[models.Person] {
	return personByID(s.Candidates, s.SelectedID)
}

// NewApproverStore builds the approver slice with the standard
// middleware chain. applicantID may be nil to skip the local
// self-approval check; the workflow still refuses self-approval
// server-side.
func NewApproverStore(audit secondary.AuditWriter, snaps *SnapshotStore, applicantID func() string) *Store[ApproverState, ApproverAction] {
	return NewStore(ApproverState{}, ApproverReducer,
		Logging[ApproverState, ApproverAction](sliceApprover, audit),
		Validation(approverRules(applicantID)...),
		Persist[ApproverState, ApproverAction](snaps, sliceApprover, func(s ApproverState) any {
			return struct {
				SelectedID string `json:"selectedId"`
			}{SelectedID: s.SelectedID}
		}),
	)
}
