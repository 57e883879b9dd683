// Package models contains domain types for giftdesk entities.
// Persistence record shapes live in ports/secondary; SQL handling lives
// in internal/adapters/sqlite.
package models

// Person represents an event participant. Persons are immutable after
// import and are never deleted during the workflow.
type Person struct {
	PublicID     string
	FirstName    string
	LastName     string
	EmployeeID   string
	PersonID     string
	SourceFormat string
}

// SourceFormat constants tag which identifying fields were populated by
// the import that produced the person.
const (
	SourceFormatName       = "name"
	SourceFormatEmployeeID = "employee_id"
	SourceFormatPersonID   = "person_id"
	SourceFormatFull       = "full"
)

// DisplayName returns the best human-readable identifier available.
func (p Person) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	case p.EmployeeID != "":
		return p.EmployeeID
	case p.PersonID != "":
		return p.PersonID
	}
	return p.PublicID
}
