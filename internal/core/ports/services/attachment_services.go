package services

import (
	"context"
	"io"
)

// AttachmentSvc stores receipts and deposit proofs.
type AttachmentSvc interface {
	// Upload stores body and returns its URL. kind groups objects
	// ("deposit-proofs", "receipts").
	Upload(ctx context.Context, kind, filename, contentType string, body io.Reader) (string, error)
}
