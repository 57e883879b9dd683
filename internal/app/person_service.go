package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// PersonServiceImpl implements the PersonService interface.
type PersonServiceImpl struct {
	personRepo secondary.PersonRepository
	importer   secondary.PersonImporter

	newID func() string
}

// NewPersonService creates a new PersonService with injected
// dependencies.
func NewPersonService(personRepo secondary.PersonRepository, importer secondary.PersonImporter) *PersonServiceImpl {
	return &PersonServiceImpl{
		personRepo: personRepo,
		importer:   importer,
		newID:      uuid.NewString,
	}
}

// ImportPersons runs the import collaborator over a file and persists
// each resulting person with a fresh publicId. Persons are immutable
// after import.
func (s *PersonServiceImpl) ImportPersons(ctx context.Context, path string) (*primary.ImportPersonsResponse, error) {
	if s.importer == nil {
		return nil, fmt.Errorf("no person importer configured")
	}

	recs, err := s.importer.Import(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to import persons: %w", err)
	}

	resp := &primary.ImportPersonsResponse{}
	for _, rec := range recs {
		if rec.SourceFormat == "" {
			return nil, &ValidationError{Field: "sourceFormat", Msg: "imported person is missing a source format"}
		}
		rec.PublicID = s.newID()
		if err := s.personRepo.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to create person: %w", err)
		}
		resp.Imported++
		resp.Persons = append(resp.Persons, recordToPersonView(rec))
	}
	return resp, nil
}

// GetPerson retrieves a person by publicId.
func (s *PersonServiceImpl) GetPerson(ctx context.Context, publicID string) (*primary.Person, error) {
	rec, err := s.personRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("person %s: %w", publicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch person: %w", err)
	}
	return recordToPersonView(rec), nil
}

// ListPersons lists all imported persons.
func (s *PersonServiceImpl) ListPersons(ctx context.Context) ([]*primary.Person, error) {
	recs, err := s.personRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	views := make([]*primary.Person, 0, len(recs))
	for _, rec := range recs {
		views = append(views, recordToPersonView(rec))
	}
	return views, nil
}
