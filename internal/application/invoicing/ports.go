package invoicing

import "context"

// ThumbnailStore guarda la miniatura de la factura y devuelve su URL pública.
type ThumbnailStore interface {
	UploadThumbnail(ctx context.Context, ownerID, invoiceID string, image []byte) (string, error)
}
