package models

import "time"

// Order bundles one or more gifts claimed by an applicant. An order is
// created PENDING and transitions to COMPLETE exactly once, when an
// approver distinct from the applicant confirms it. It is never deleted
// or reverted to PENDING.
type Order struct {
	PublicID         string
	OrderCode        string // business-level code shown on the physical QR artifact
	ApplicantID      string
	GiftIDs          []string
	ConfirmationCode string
	ConfirmedByID    string
	ConfirmedAt      time.Time
	Status           string
}

// Order status constants
const (
	OrderStatusPending  = "PENDING"
	OrderStatusComplete = "COMPLETE"
)

// Confirmed reports whether the order has been confirmed. Status,
// ConfirmedByID and ConfirmedAt are set together; one implies the
// others.
func (o Order) Confirmed() bool {
	return o.Status == OrderStatusComplete && o.ConfirmedByID != "" && !o.ConfirmedAt.IsZero()
}
