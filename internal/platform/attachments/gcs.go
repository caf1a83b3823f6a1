// Package attachments stores uploaded files in Google Cloud Storage.
package attachments

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	"google.golang.org/api/option"
)

// GCSStore implements ports.AttachmentStore on one bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

var _ ports.AttachmentStore = (*GCSStore)(nil)

// NewGCSStore prefers explicit credentials JSON (local runs) and falls back
// to application default credentials, then checks the bucket is reachable.
func NewGCSStore(ctx context.Context, bucket, credentialsJSON string) (*GCSStore, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("gcs bucket %q not found or not accessible: %w", bucket, err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload %s: %w", name, err)
	}
	return ObjectURL(s.bucket, name), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// ObjectURL is the canonical https URL of an object.
func ObjectURL(bucket, name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, name)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectName builds "<kind>/<id>-<sanitised base name>".
func ObjectName(kind, id, filename string) string {
	base := unsafeChars.ReplaceAllString(path.Base(strings.ReplaceAll(filename, `\`, "/")), "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%s-%s", kind, id, base)
}
