package flow

import (
	"errors"
	"fmt"

	"github.com/example/giftdesk/internal/maybe"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
	"github.com/example/giftdesk/internal/result"
)

const sliceApplicant = "applicant"

// ApplicantState is the applicant-selection slice: the imported person
// list and the publicId of the person currently acting as applicant.
type ApplicantState struct {
	Candidates []models.Person
	SelectedID string
}

// ApplicantAction is the closed action union of the applicant slice.
type ApplicantAction interface {
	isApplicantAction()
}

// SetApplicantCandidates replaces the candidate list.
type SetApplicantCandidates struct {
	Candidates []models.Person
}

// SelectApplicant marks one candidate as the acting applicant.
type SelectApplicant struct {
	PublicID string
}

// ClearApplicant drops the current selection.
type ClearApplicant struct{}

func (SetApplicantCandidates) isApplicantAction() {}
func (SelectApplicant) isApplicantAction()        {}
func (ClearApplicant) isApplicantAction()         {}

// ApplicantReducer computes the next applicant-selection state.
func ApplicantReducer(state ApplicantState, action ApplicantAction) result.Result[ApplicantState] {
	switch a := action.(type) {
	case SetApplicantCandidates:
		state.Candidates = a.Candidates
		state.SelectedID = ""
		return result.Ok(state)
	case SelectApplicant:
		state.SelectedID = a.PublicID
		return result.Ok(state)
	case ClearApplicant:
		state.SelectedID = ""
		return result.Ok(state)
	default:
		return result.Err[ApplicantState](&UnknownActionError{Slice: sliceApplicant, Action: fmt.Sprintf("%T", action)})
	}
}

func applicantRules() []Rule[ApplicantState, ApplicantAction] {
	return []Rule[ApplicantState, ApplicantAction]{
		func(action ApplicantAction, state ApplicantState) error {
			sel, ok := action.(SelectApplicant)
			if !ok {
				return nil
			}
			if sel.PublicID == "" {
				return errors.New("applicant publicId is required")
			}
			if !personInList(state.Candidates, sel.PublicID) {
				return fmt.Errorf("person %s is not in the applicant list", sel.PublicID)
			}
			return nil
		},
	}
}

// Selected returns the selected applicant, or None when no selection
// has been made yet.
func (s ApplicantState) Selected() maybe.Maybe[models.Person] {
	return personByID(s.Candidates, s.SelectedID)
}

// NewApplicantStore builds the applicant slice with the standard
// middleware chain. audit and snaps may be nil.
func NewApplicantStore(audit secondary.AuditWriter, snaps *SnapshotStore) *Store[ApplicantState, ApplicantAction] {
	return NewStore(ApplicantState{}, ApplicantReducer,
		Logging[ApplicantState, ApplicantAction](sliceApplicant, audit),
		Validation(applicantRules()...),
		Persist[ApplicantState, ApplicantAction](snaps, sliceApplicant, func(s ApplicantState) any {
			return struct {
				SelectedID string `json:"selectedId"`
			}{SelectedID: s.SelectedID}
		}),
	)
}

func personInList(persons []models.Person, publicID string) bool {
	for _, p := range persons {
		if p.PublicID == publicID {
			return true
		}
	}
	return false
}

func personByID(persons []models.Person, publicID string) maybe.Maybe[models.Person] {
	if publicID == "" {
		return maybe.None[models.Person]()
	}
	for _, p := range persons {
		if p.PublicID == publicID {
			return maybe.Some(p)
		}
	}
	return maybe.None[models.Person]()
}
