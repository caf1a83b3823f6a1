package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"strings"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/platform/attachments"
	"github.com/google/uuid"
)

// Attachment kinds accepted by Upload.
const (
	AttachmentReceipt      = "receipts"
	AttachmentDepositProof = "deposit-proofs"
)

type attachmentService struct {
	BaseService
	store ports.AttachmentStore
}

// NewAttachmentService creates a new AttachmentService. A nil store makes
// every upload fail with apperrors.ErrUnavailable.
func NewAttachmentService(store ports.AttachmentStore, options ...Option) portssvc.AttachmentSvc {
	return &attachmentService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.AttachmentSvc = (*attachmentService)(nil)

func allowedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/pdf" || strings.HasPrefix(mediaType, "image/")
}

func (s *attachmentService) Upload(ctx context.Context, kind, filename, contentType string, body io.Reader) (string, error) {
	if s.store == nil {
		return "", apperrors.NewAppError(503, "attachment storage is not configured", apperrors.ErrUnavailable)
	}
	if kind != AttachmentReceipt && kind != AttachmentDepositProof {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("unknown attachment kind %q", kind))
	}
	if !allowedContentType(contentType) {
		return "", apperrors.NewValidationFailedError("only images and PDF files can be attached")
	}

	name := attachments.ObjectName(kind, uuid.NewString(), filename)
	url, err := s.store.Put(ctx, name, contentType, body)
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.String("object", name))
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}
	s.LogInfo(ctx, "Attachment stored", slog.String("object", name), slog.String("kind", kind))
	return url, nil
}
