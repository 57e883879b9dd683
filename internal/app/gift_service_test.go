package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

func newGiftFixture() (*GiftServiceImpl, *mockGiftRepository, *mockPersonRepository) {
	gifts := newMockGiftRepository()
	persons := newMockPersonRepository()
	svc := NewGiftService(gifts, persons)
	svc.newID = sequentialIDs("G")
	return svc, gifts, persons
}

func TestSeedGifts(t *testing.T) {
	svc, gifts, persons := newGiftFixture()
	persons.seedPerson("P-1")
	persons.seedPerson("P-2")
	gifts.seedGift("G-EXISTING", "P-1")

	resp, err := svc.SeedGifts(context.Background())
	if err != nil {
		t.Fatalf("SeedGifts failed: %v", err)
	}
	if resp.Created != 1 || resp.Skipped != 1 {
		t.Errorf("created/skipped = %d/%d, want 1/1", resp.Created, resp.Skipped)
	}

	// Re-running creates nothing new.
	resp, err = svc.SeedGifts(context.Background())
	if err != nil {
		t.Fatalf("second SeedGifts failed: %v", err)
	}
	if resp.Created != 0 || resp.Skipped != 2 {
		t.Errorf("created/skipped = %d/%d, want 0/2", resp.Created, resp.Skipped)
	}
}

func TestFindUnclaimedGift(t *testing.T) {
	t.Run("returns the owner's unclaimed gift", func(t *testing.T) {
		svc, gifts, persons := newGiftFixture()
		persons.seedPerson("P-OWNER")
		gifts.seedGift("G-1", "P-OWNER")

		got, err := svc.FindUnclaimedGift(context.Background(), "P-OWNER")
		if err != nil {
			t.Fatalf("FindUnclaimedGift failed: %v", err)
		}
		if got == nil || got.PublicID != "G-1" {
			t.Errorf("gift = %+v, want G-1", got)
		}
	})

	t.Run("returns nil when the only gift is claimed", func(t *testing.T) {
		svc, gifts, persons := newGiftFixture()
		persons.seedPerson("P-OWNER")
		gifts.gifts["G-1"] = &secondary.GiftRecord{
			PublicID: "G-1", OwnerID: "P-OWNER", ApplicantID: "P-APP", OrderID: "O-1",
		}

		got, err := svc.FindUnclaimedGift(context.Background(), "P-OWNER")
		if err != nil {
			t.Fatalf("FindUnclaimedGift failed: %v", err)
		}
		if got != nil {
			t.Errorf("gift = %+v, want nil", got)
		}
	})

	t.Run("fails for an unknown owner", func(t *testing.T) {
		svc, _, _ := newGiftFixture()
		_, err := svc.FindUnclaimedGift(context.Background(), "P-GHOST")
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestListGifts(t *testing.T) {
	svc, gifts, persons := newGiftFixture()
	persons.seedPerson("P-OWNER")
	gifts.seedGift("G-1", "P-OWNER")
	gifts.gifts["G-2"] = &secondary.GiftRecord{
		PublicID: "G-2", OwnerID: "P-OWNER", ApplicantID: "P-APP", OrderID: "O-1",
	}

	unclaimed, err := svc.ListGifts(context.Background(), primary.GiftFilters{Unclaimed: true})
	if err != nil {
		t.Fatalf("ListGifts failed: %v", err)
	}
	if len(unclaimed) != 1 || unclaimed[0].PublicID != "G-1" {
		t.Errorf("unclaimed = %v, want [G-1]", unclaimed)
	}

	byOrder, err := svc.ListGifts(context.Background(), primary.GiftFilters{OrderID: "O-1"})
	if err != nil {
		t.Fatalf("ListGifts failed: %v", err)
	}
	if len(byOrder) != 1 || byOrder[0].PublicID != "G-2" {
		t.Errorf("byOrder = %v, want [G-2]", byOrder)
	}
}
