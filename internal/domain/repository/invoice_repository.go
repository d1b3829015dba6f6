package repository

import (
	"context"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia del agregado Invoice.
// Los métodos Find* devuelven (nil, nil) cuando no existe el registro.
type InvoiceRepository interface {
	// Save inserta o reemplaza por id. Asigna ID si está vacío, fija CreatedAt en la
	// primera persistencia y LastUpdatedAt en cada una.
	Save(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error)
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Invoice, error)
	FindByOwnerAndID(ctx context.Context, ownerID, id string) (*entity.Invoice, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID string, status entity.InvoiceStatus) ([]*entity.Invoice, error)
	// FindByStatusIn recorre todos los dueños (uso de los jobs programados).
	FindByStatusIn(ctx context.Context, statuses ...entity.InvoiceStatus) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
}
