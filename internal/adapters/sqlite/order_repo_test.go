package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/giftdesk/internal/adapters/sqlite"
	"github.com/example/giftdesk/internal/ports/secondary"
)

func seedOrderRecord(applicant string, giftIDs ...string) *secondary.OrderRecord {
	return &secondary.OrderRecord{
		PublicID:         "O-1",
		OrderCode:        "CODE-1",
		ApplicantID:      applicant,
		GiftIDs:          giftIDs,
		ConfirmationCode: "RQ-1",
		Status:           "PENDING",
	}
}

func TestOrderRepository_CreateAndGet(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewOrderRepository(testDB)
	ctx := context.Background()

	owner := seedPerson(t, testDB, "P-OWNER")
	applicant := seedPerson(t, testDB, "P-APP")
	seedGift(t, testDB, "G-1", owner)
	seedGift(t, testDB, "G-2", owner)

	if err := repo.Create(ctx, seedOrderRecord(applicant, "G-1", "G-2")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByPublicID(ctx, "O-1")
	if err != nil {
		t.Fatalf("GetByPublicID failed: %v", err)
	}
	if got.Status != "PENDING" || got.ApplicantID != applicant {
		t.Errorf("order = %+v", got)
	}
	if len(got.GiftIDs) != 2 || got.GiftIDs[0] != "G-1" || got.GiftIDs[1] != "G-2" {
		t.Errorf("bundle = %v, want [G-1 G-2] in creation order", got.GiftIDs)
	}
	if got.ConfirmedByID != "" || got.ConfirmedAt != "" {
		t.Errorf("pending order must have no confirmation fields: %+v", got)
	}

	byCode, err := repo.GetByOrderCode(ctx, "CODE-1")
	if err != nil {
		t.Fatalf("GetByOrderCode failed: %v", err)
	}
	if byCode.PublicID != "O-1" {
		t.Errorf("byCode = %+v, want O-1", byCode)
	}

	if _, err := repo.GetByPublicID(ctx, "O-GHOST"); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestOrderRepository_DuplicateOrderCode(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewOrderRepository(testDB)
	ctx := context.Background()

	owner := seedPerson(t, testDB, "P-OWNER")
	applicant := seedPerson(t, testDB, "P-APP")
	seedGift(t, testDB, "G-1", owner)

	if err := repo.Create(ctx, seedOrderRecord(applicant, "G-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := seedOrderRecord(applicant, "G-1")
	dup.PublicID = "O-2"
	if err := repo.Create(ctx, dup); err == nil {
		t.Errorf("expected unique violation for duplicate order code")
	}
}

func TestOrderRepository_MarkComplete(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewOrderRepository(testDB)
	ctx := context.Background()

	owner := seedPerson(t, testDB, "P-OWNER")
	applicant := seedPerson(t, testDB, "P-APP")
	approver := seedPerson(t, testDB, "P-APPROVER")
	seedGift(t, testDB, "G-1", owner)

	if err := repo.Create(ctx, seedOrderRecord(applicant, "G-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	at := time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)
	ok, err := repo.MarkComplete(ctx, "O-1", approver, at)
	if err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}
	if !ok {
		t.Fatalf("first MarkComplete should flip the order")
	}

	got, err := repo.GetByPublicID(ctx, "O-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "COMPLETE" || got.ConfirmedByID != approver || got.ConfirmedAt == "" {
		t.Errorf("order = %+v, want COMPLETE by %s", got, approver)
	}

	// The second flip sees no PENDING row.
	ok, err = repo.MarkComplete(ctx, "O-1", approver, at.Add(time.Minute))
	if err != nil {
		t.Fatalf("second MarkComplete errored: %v", err)
	}
	if ok {
		t.Errorf("second MarkComplete should affect zero rows")
	}

	// Missing orders also report false.
	ok, err = repo.MarkComplete(ctx, "O-GHOST", approver, at)
	if err != nil || ok {
		t.Errorf("MarkComplete of missing order = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestOrderRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewOrderRepository(testDB)
	ctx := context.Background()

	owner := seedPerson(t, testDB, "P-OWNER")
	applicant := seedPerson(t, testDB, "P-APP")
	approver := seedPerson(t, testDB, "P-APPROVER")
	seedGift(t, testDB, "G-1", owner)
	seedGift(t, testDB, "G-2", owner)

	first := seedOrderRecord(applicant, "G-1")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := seedOrderRecord(applicant, "G-2")
	second.PublicID = "O-2"
	second.OrderCode = "CODE-2"
	if err := repo.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	if ok, err := repo.MarkComplete(ctx, "O-1", approver, time.Now()); err != nil || !ok {
		t.Fatalf("MarkComplete failed: (%v, %v)", ok, err)
	}

	pending, err := repo.List(ctx, secondary.OrderFilters{Status: "PENDING"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 1 || pending[0].PublicID != "O-2" {
		t.Errorf("pending = %v, want [O-2]", pending)
	}

	complete, err := repo.List(ctx, secondary.OrderFilters{Status: "COMPLETE"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(complete) != 1 || complete[0].PublicID != "O-1" {
		t.Errorf("complete = %v, want [O-1]", complete)
	}
	if len(complete[0].GiftIDs) != 1 {
		t.Errorf("listed orders must include bundles, got %+v", complete[0])
	}
}
