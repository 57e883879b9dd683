package primary

import "context"

// PersonService defines the primary port for person operations.
type PersonService interface {
	// ImportPersons runs the import collaborator over a file and
	// persists the resulting persons with fresh publicIds.
	ImportPersons(ctx context.Context, path string) (*ImportPersonsResponse, error)

	// GetPerson retrieves a person by publicId.
	GetPerson(ctx context.Context, publicID string) (*Person, error)

	// ListPersons lists all imported persons.
	ListPersons(ctx context.Context) ([]*Person, error)
}

// ImportPersonsResponse contains the result of an import.
type ImportPersonsResponse struct {
	Imported int
	Persons  []*Person
}

// Person is the external view of a person.
type Person struct {
	PublicID     string
	FirstName    string
	LastName     string
	EmployeeID   string
	PersonID     string
	SourceFormat string
}
