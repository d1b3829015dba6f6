// Package storage miniaturas de facturas en Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/pkg/config"
)

var _ invoicing.ThumbnailStore = (*GCSThumbnailStore)(nil)

// GCSThumbnailStore sube la miniatura reducida a thumbnails/<owner>/<invoice>.png.
type GCSThumbnailStore struct {
	client  *gcs.Client
	bucket  string
	baseURL string
}

// NewGCSThumbnailStore usa CredentialsJSON si está definido; si no, las credenciales por defecto (ADC).
func NewGCSThumbnailStore(ctx context.Context, cfg config.StorageConfig) (*GCSThumbnailStore, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com/" + cfg.Bucket
	}
	return &GCSThumbnailStore{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

// UploadThumbnail reduce la imagen, la sube y devuelve su URL pública.
func (s *GCSThumbnailStore) UploadThumbnail(ctx context.Context, ownerID, invoiceID string, image []byte) (string, error) {
	data, err := Downscale(image)
	if err != nil {
		return "", err
	}
	name := ObjectName(ownerID, invoiceID)
	wc := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	wc.ContentType = "image/png"
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

// Close libera el cliente.
func (s *GCSThumbnailStore) Close() error { return s.client.Close() }

// ObjectName ruta del objeto de la miniatura.
func ObjectName(ownerID, invoiceID string) string {
	return fmt.Sprintf("thumbnails/%s/%s.png", ownerID, invoiceID)
}
