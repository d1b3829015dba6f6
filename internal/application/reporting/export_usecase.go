// Package reporting exportación masiva de facturas.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/pkg/logger"
	"github.com/jhoicas/invoizo-api/pkg/validation"
)

// ErrNothingToExport el filtro no dejó ninguna factura del usuario.
var ErrNothingToExport = errors.New("No invoices found to export")

const (
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV   = "text/csv"
)

// ExportResult archivo listo para descargar.
type ExportResult struct {
	Data        []byte
	Filename    string
	ContentType string
	Count       int
}

// ExportUseCase exporta las facturas del llamador a Excel o CSV.
type ExportUseCase struct {
	source   InvoiceSource
	exporter InvoiceExporter
	log      *logger.Logger
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(source InvoiceSource, exporter InvoiceExporter, log *logger.Logger) *ExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExportUseCase{source: source, exporter: exporter, log: log.WithComponent("export"), now: time.Now}
}

// Export valida el formato, filtra por ids (en blanco se descartan; ninguno = todas) y genera el archivo.
func (uc *ExportUseCase) Export(ctx context.Context, ownerID, format string, invoiceIDs []string) (*ExportResult, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	f, err := validation.ParseExportFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	invoices, err := uc.source.FetchByIDs(ctx, ownerID, CleanIDs(invoiceIDs))
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, ErrNothingToExport
	}

	var (
		data        []byte
		ext         string
		contentType string
	)
	switch f {
	case validation.FormatExcel:
		data, err = uc.exporter.ExportToExcel(ctx, invoices)
		ext, contentType = "xlsx", ContentTypeExcel
	case validation.FormatCSV:
		data, err = uc.exporter.ExportToCSV(ctx, invoices)
		ext, contentType = "csv", ContentTypeCSV
	}
	if err != nil {
		uc.log.Error().Err(err).Str("owner_id", ownerID).Str("format", string(f)).Msg("export failed")
		return nil, err
	}

	uc.log.Info().Str("owner_id", ownerID).Str("format", string(f)).Int("count", len(invoices)).Msg("invoices exported")
	return &ExportResult{
		Data:        data,
		Filename:    Filename(uc.now(), ext),
		ContentType: contentType,
		Count:       len(invoices),
	}, nil
}

// Filename invoices_YYYY-MM-DD.<ext> con la fecha local del servidor.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("invoices_%s.%s", now.In(time.Local).Format("2006-01-02"), ext)
}

// CleanIDs acepta ids sueltos o separados por comas; descarta los vacíos.
func CleanIDs(ids []string) []string {
	var out []string
	for _, raw := range ids {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}
