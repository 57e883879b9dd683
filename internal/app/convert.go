// Package app implements the primary ports. Services receive
// repository interfaces and compose the pure core rules with
// conditional storage writes.
package app

import (
	"fmt"
	"time"

	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/primary"
	"github.com/example/giftdesk/internal/ports/secondary"
)

func recordToPerson(rec *secondary.PersonRecord) models.Person {
	return models.Person{
		PublicID:     rec.PublicID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		EmployeeID:   rec.EmployeeID,
		PersonID:     rec.PersonID,
		SourceFormat: rec.SourceFormat,
	}
}

func recordToPersonView(rec *secondary.PersonRecord) *primary.Person {
	return &primary.Person{
		PublicID:     rec.PublicID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		EmployeeID:   rec.EmployeeID,
		PersonID:     rec.PersonID,
		SourceFormat: rec.SourceFormat,
	}
}

func recordToGift(rec *secondary.GiftRecord) models.Gift {
	return models.Gift{
		PublicID:    rec.PublicID,
		OwnerID:     rec.OwnerID,
		ApplicantID: rec.ApplicantID,
		OrderID:     rec.OrderID,
	}
}

func recordToGiftView(rec *secondary.GiftRecord) *primary.Gift {
	return &primary.Gift{
		PublicID:    rec.PublicID,
		OwnerID:     rec.OwnerID,
		ApplicantID: rec.ApplicantID,
		OrderID:     rec.OrderID,
	}
}

func recordToOrder(rec *secondary.OrderRecord) (models.Order, error) {
	o := models.Order{
		PublicID:         rec.PublicID,
		OrderCode:        rec.OrderCode,
		ApplicantID:      rec.ApplicantID,
		GiftIDs:          append([]string(nil), rec.GiftIDs...),
		ConfirmationCode: rec.ConfirmationCode,
		ConfirmedByID:    rec.ConfirmedByID,
		Status:           rec.Status,
	}
	if rec.ConfirmedAt != "" {
		t, err := time.Parse(time.RFC3339, rec.ConfirmedAt)
		if err != nil {
			return models.Order{}, fmt.Errorf("order %s has malformed confirmed_at %q: %w", rec.PublicID, rec.ConfirmedAt, err)
		}
		o.ConfirmedAt = t
	}
	return o, nil
}

func orderToRecord(o models.Order) *secondary.OrderRecord {
	rec := &secondary.OrderRecord{
		PublicID:         o.PublicID,
		OrderCode:        o.OrderCode,
		ApplicantID:      o.ApplicantID,
		GiftIDs:          append([]string(nil), o.GiftIDs...),
		ConfirmationCode: o.ConfirmationCode,
		ConfirmedByID:    o.ConfirmedByID,
		Status:           o.Status,
	}
	if !o.ConfirmedAt.IsZero() {
		rec.ConfirmedAt = o.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

func recordToOrderView(rec *secondary.OrderRecord) *primary.Order {
	return &primary.Order{
		PublicID:         rec.PublicID,
		OrderCode:        rec.OrderCode,
		ApplicantID:      rec.ApplicantID,
		GiftIDs:          append([]string(nil), rec.GiftIDs...),
		ConfirmationCode: rec.ConfirmationCode,
		ConfirmedByID:    rec.ConfirmedByID,
		ConfirmedAt:      rec.ConfirmedAt,
		Status:           rec.Status,
		CreatedAt:        rec.CreatedAt,
	}
}
