package reporting

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

// ContentTypePDF tipo MIME de la descarga en PDF.
const ContentTypePDF = "application/pdf"

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PDFUseCase genera en el servidor el PDF de una factura del llamador.
type PDFUseCase struct {
	source   InvoiceSource
	renderer InvoicePDFRenderer
	log      *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(source InvoiceSource, renderer InvoicePDFRenderer, log *logger.Logger) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{source: source, renderer: renderer, log: log.WithComponent("invoice-pdf")}
}

// Render busca la factura del dueño y la convierte a PDF. Una factura ajena o
// inexistente devuelve domain.ErrNotFound.
func (uc *PDFUseCase) Render(ctx context.Context, ownerID, invoiceID string) (*ExportResult, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: Invoice ID is required", domain.ErrInvalidInput)
	}
	found, err := uc.source.FetchByIDs(ctx, ownerID, []string{invoiceID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}
	inv := found[0]

	data, err := uc.renderer.RenderInvoicePDF(ctx, inv)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("render pdf")
		return nil, fmt.Errorf("%w: %w", domain.ErrExportGeneration, err)
	}
	return &ExportResult{
		Data:        data,
		Filename:    PDFFilename(inv.Invoice.Number, inv.ID),
		ContentType: ContentTypePDF,
		Count:       1,
	}, nil
}

// PDFFilename invoice_<número>.pdf; sin número usa el id.
func PDFFilename(number, id string) string {
	base := strings.Trim(unsafeFilename.ReplaceAllString(strings.TrimSpace(number), "_"), "_")
	if base == "" {
		base = id
	}
	return "invoice_" + base + ".pdf"
}
