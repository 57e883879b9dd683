package secondary

import "context"

// PersonImporter defines the secondary port for bulk person import.
// The spreadsheet parsing itself is an external collaborator; the
// engine only depends on this interface. Records must arrive with
// SourceFormat set and without PublicIDs (the service assigns those).
type PersonImporter interface {
	// Import reads a participant list from a file.
	Import(ctx context.Context, path string) ([]*PersonRecord, error)
}

// QRCodeRenderer defines the secondary port for QR code generation.
type QRCodeRenderer interface {
	// Render returns a base64-encoded PNG for the given URL.
	Render(url string) (string, error)
}

// EmailMessage is the envelope accepted by the email collaborator.
type EmailMessage struct {
	To          string
	Subject     string
	HTML        string
	Attachments map[string][]byte
}

// EmailSender defines the secondary port for email delivery.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}
