package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/giftdesk/internal/core/claim"
	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// GiftServiceImpl implements the GiftService interface.
type GiftServiceImpl struct {
	giftRepo   secondary.GiftRepository
	personRepo secondary.PersonRepository

	newID func() string
}

// NewGiftService creates a new GiftService with injected dependencies.
func NewGiftService(giftRepo secondary.GiftRepository, personRepo secondary.PersonRepository) *GiftServiceImpl {
	return &GiftServiceImpl{
		giftRepo:   giftRepo,
		personRepo: personRepo,
		newID:      uuid.NewString,
	}
}

// SeedGifts creates one unclaimed gift per imported person that does
// not have one yet. Runs at event setup; re-running is harmless.
func (s *GiftServiceImpl) SeedGifts(ctx context.Context) (*primary.SeedGiftsResponse, error) {
	persons, err := s.personRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}

	resp := &primary.SeedGiftsResponse{}
	for _, p := range persons {
		has, err := s.giftRepo.OwnerHasGift(ctx, p.PublicID)
		if err != nil {
			return nil, fmt.Errorf("failed to check gifts for %s: %w", p.PublicID, err)
		}
		if has {
			resp.Skipped++
			continue
		}
		gift := &secondary.GiftRecord{
			PublicID: s.newID(),
			OwnerID:  p.PublicID,
		}
		if err := s.giftRepo.Create(ctx, gift); err != nil {
			return nil, fmt.Errorf("failed to create gift for %s: %w", p.PublicID, err)
		}
		resp.Created++
	}
	return resp, nil
}

// GetGift retrieves a gift by publicId.
func (s *GiftServiceImpl) GetGift(ctx context.Context, publicID string) (*primary.Gift, error) {
	rec, err := s.giftRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("gift %s: %w", publicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch gift: %w", err)
	}
	return recordToGiftView(rec), nil
}

// ListGifts lists gifts with optional filters.
func (s *GiftServiceImpl) ListGifts(ctx context.Context, filters primary.GiftFilters) ([]*primary.Gift, error) {
	recs, err := s.giftRepo.List(ctx, secondary.GiftFilters{
		OwnerID:     filters.OwnerID,
		ApplicantID: filters.ApplicantID,
		OrderID:     filters.OrderID,
		Unclaimed:   filters.Unclaimed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	views := make([]*primary.Gift, 0, len(recs))
	for _, rec := range recs {
		views = append(views, recordToGiftView(rec))
	}
	return views, nil
}

// FindUnclaimedGift returns the owner's first unclaimed gift, or nil
// when everything the owner brought is already claimed.
func (s *GiftServiceImpl) FindUnclaimedGift(ctx context.Context, ownerPublicID string) (*primary.Gift, error) {
	ownerRec, err := s.personRepo.GetByPublicID(ctx, ownerPublicID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("owner %s: %w", ownerPublicID, secondary.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	recs, err := s.giftRepo.List(ctx, secondary.GiftFilters{OwnerID: ownerPublicID})
	if err != nil {
		return nil, fmt.Errorf("failed to list gifts: %w", err)
	}
	gifts := make([]models.Gift, 0, len(recs))
	for _, rec := range recs {
		gifts = append(gifts, recordToGift(rec))
	}

	found, ok := claim.FindUnclaimedGift(recordToPerson(ownerRec), gifts).Get()
	if !ok {
		return nil, nil
	}
	return &primary.Gift{
		PublicID:    found.PublicID,
		OwnerID:     found.OwnerID,
		ApplicantID: found.ApplicantID,
		OrderID:     found.OrderID,
	}, nil
}
