// Package secondary defines the secondary ports (driven adapters) for
// the application: persistence repositories and external collaborator
// interfaces. Every cross-record reference exposed through these ports
// is a publicId; internal storage keys never leave the adapters.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing. Adapters wrap it
// with entity detail; services match it with errors.Is.
var ErrNotFound = errors.New("record not found")

// PersonRepository defines the secondary port for person persistence.
type PersonRepository interface {
	// Create persists a new person.
	Create(ctx context.Context, person *PersonRecord) error

	// GetByPublicID retrieves a person by publicId.
	GetByPublicID(ctx context.Context, publicID string) (*PersonRecord, error)

	// List retrieves all persons in import order.
	List(ctx context.Context) ([]*PersonRecord, error)
}

// PersonRecord represents a person as stored in persistence.
type PersonRecord struct {
	PublicID     string
	FirstName    string
	LastName     string
	EmployeeID   string
	PersonID     string
	SourceFormat string
	CreatedAt    string
}

// GiftRepository defines the secondary port for gift persistence.
type GiftRepository interface {
	// Create persists a new unclaimed gift.
	Create(ctx context.Context, gift *GiftRecord) error

	// GetByPublicID retrieves a gift by publicId.
	GetByPublicID(ctx context.Context, publicID string) (*GiftRecord, error)

	// List retrieves gifts matching the given filters.
	List(ctx context.Context, filters GiftFilters) ([]*GiftRecord, error)

	// Claim binds a gift to an applicant and order with a single
	// conditional write: the update only applies while the gift row is
	// unclaimed or already holds this exact claim. Returns false when
	// the gift is held by a different claim, so concurrent
	// confirmations of orders sharing a gift serialize at the row.
	Claim(ctx context.Context, giftPublicID, applicantPublicID, orderPublicID string) (bool, error)

	// OwnerHasGift reports whether a gift already exists for an owner.
	OwnerHasGift(ctx context.Context, ownerPublicID string) (bool, error)
}

// GiftRecord represents a gift as stored in persistence.
type GiftRecord struct {
	PublicID    string
	OwnerID     string
	ApplicantID string
	OrderID     string
	CreatedAt   string
}

// GiftFilters contains filter options for querying gifts.
type GiftFilters struct {
	OwnerID     string
	ApplicantID string
	OrderID     string
	Unclaimed   bool
}

// OrderRepository defines the secondary port for order persistence.
type OrderRepository interface {
	// Create persists a new PENDING order and its gift bundle.
	Create(ctx context.Context, order *OrderRecord) error

	// GetByPublicID retrieves an order by publicId, including its gift
	// bundle in creation order.
	GetByPublicID(ctx context.Context, publicID string) (*OrderRecord, error)

	// GetByOrderCode retrieves an order by its business-level code.
	GetByOrderCode(ctx context.Context, orderCode string) (*OrderRecord, error)

	// List retrieves orders matching the given filters.
	List(ctx context.Context, filters OrderFilters) ([]*OrderRecord, error)

	// MarkComplete flips the order from PENDING to COMPLETE as one
	// conditional write. Returns false when the order was not PENDING
	// at write time, which closes the double-confirmation race.
	MarkComplete(ctx context.Context, publicID, approverPublicID string, at time.Time) (bool, error)
}

// OrderRecord represents an order as stored in persistence.
type OrderRecord struct {
	PublicID         string
	OrderCode        string
	ApplicantID      string
	GiftIDs          []string
	ConfirmationCode string
	ConfirmedByID    string
	ConfirmedAt      string
	Status           string
	CreatedAt        string
}

// OrderFilters contains filter options for querying orders.
type OrderFilters struct {
	Status string
	Limit  int
}
