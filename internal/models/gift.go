package models

// Gift represents a gift owned by one person and claimable by another.
// OwnerID is set at creation and never changes. ApplicantID and OrderID
// are set together or not at all: a gift is claimed exactly when it
// belongs to an order. The only mutation point for that pair is
// claim.ApplyClaim; direct field writes are forbidden by design.
type Gift struct {
	PublicID    string
	OwnerID     string
	ApplicantID string
	OrderID     string
}

// Claimed reports whether the gift belongs to an order.
func (g Gift) Claimed() bool {
	return g.ApplicantID != "" && g.OrderID != ""
}
