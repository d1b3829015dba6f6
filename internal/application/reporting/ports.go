package reporting

import (
	"context"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// InvoiceExporter genera el archivo de exportación. Lista vacía => domain.ErrEmptyExport.
type InvoiceExporter interface {
	ExportToExcel(ctx context.Context, invoices []*entity.Invoice) ([]byte, error)
	ExportToCSV(ctx context.Context, invoices []*entity.Invoice) ([]byte, error)
}

// InvoiceSource lectura de facturas del dueño.
type InvoiceSource interface {
	FetchByIDs(ctx context.Context, ownerID string, ids []string) ([]*entity.Invoice, error)
}

// InvoicePDFRenderer genera la representación PDF de una factura.
type InvoicePDFRenderer interface {
	RenderInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}
