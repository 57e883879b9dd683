package app

import (
	"context"
	"fmt"

	"github.com/example/giftdesk/internal/models"
	"github.com/example/giftdesk/internal/ports/secondary"
)

// ConfirmationNotifier emails the physical confirmation artifact for a
// freshly created order: a QR code pointing at the confirmation URL.
// Both collaborators are external; the notifier only composes their
// inputs.
type ConfirmationNotifier struct {
	qr      secondary.QRCodeRenderer
	email   secondary.EmailSender
	baseURL string
	to      string // organizer address printing the artifacts
}

// NewConfirmationNotifier creates a notifier for the given organizer
// address. baseURL is the externally reachable root of the
// confirmation endpoint.
func NewConfirmationNotifier(qr secondary.QRCodeRenderer, email secondary.EmailSender, baseURL, to string) *ConfirmationNotifier {
	return &ConfirmationNotifier{qr: qr, email: email, baseURL: baseURL, to: to}
}

// OrderCreated renders the confirmation QR for the order and mails it.
func (n *ConfirmationNotifier) OrderCreated(ctx context.Context, o models.Order, applicant models.Person) error {
	url := fmt.Sprintf("%s/orders/%s/confirm?code=%s", n.baseURL, o.PublicID, o.ConfirmationCode)
	img, err := n.qr.Render(url)
	if err != nil {
		return fmt.Errorf("failed to render confirmation QR: %w", err)
	}

	msg := secondary.EmailMessage{
		To:      n.to,
		Subject: fmt.Sprintf("Order %s for %s", o.OrderCode, applicant.DisplayName()),
		HTML: fmt.Sprintf("<p>Order <b>%s</b> was created for %s with %d gifts. Print the attached code for confirmation.</p>",
			o.OrderCode, applicant.DisplayName(), len(o.GiftIDs)),
		Attachments: map[string][]byte{
			fmt.Sprintf("order-%s.png", o.OrderCode): []byte(img),
		},
	}
	if err := n.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
