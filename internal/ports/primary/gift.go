package primary

import "context"

// GiftService defines the primary port for gift operations.
type GiftService interface {
	// SeedGifts creates one unclaimed gift per imported person that
	// does not have one yet. Gifts are created once at event setup and
	// never re-created.
	SeedGifts(ctx context.Context) (*SeedGiftsResponse, error)

	// GetGift retrieves a gift by publicId.
	GetGift(ctx context.Context, publicID string) (*Gift, error)

	// ListGifts lists gifts with optional filters.
	ListGifts(ctx context.Context, filters GiftFilters) ([]*Gift, error)

	// FindUnclaimedGift returns the owner's first unclaimed gift, or
	// nil when every gift of that owner is already claimed.
	FindUnclaimedGift(ctx context.Context, ownerPublicID string) (*Gift, error)
}

// SeedGiftsResponse contains the result of seeding gifts.
type SeedGiftsResponse struct {
	Created int
	Skipped int
}

// Gift is the external view of a gift.
type Gift struct {
	PublicID    string
	OwnerID     string
	ApplicantID string
	OrderID     string
}

// GiftFilters contains filter options for listing gifts.
type GiftFilters struct {
	OwnerID     string
	ApplicantID string
	OrderID     string
	Unclaimed   bool
}
