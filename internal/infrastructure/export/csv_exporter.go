package export

import (
	"bytes"
	"context"
	"encoding/csv"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// ExportToCSV genera CSV RFC 4180 (comillas cuando el campo contiene coma, comilla o
// salto de línea) con fin de línea "\n".
func (e *Exporter) ExportToCSV(ctx context.Context, invoices []*entity.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, domain.ErrEmptyExport
	}
	e.log.Info().Int("count", len(invoices)).Msg("starting csv export")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Headers); err != nil {
		return nil, generationError("csv header", err)
	}
	written := 0
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if inv == nil {
			e.log.Error().Msg("nil invoice in export, skipping row")
			continue
		}
		if err := w.Write(buildRow(inv).strings()); err != nil {
			e.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("error formatting csv row, skipping")
			continue
		}
		written++
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, generationError("csv flush", err)
	}
	e.log.Info().Int("rows", written).Msg("csv export completed")
	return buf.Bytes(), nil
}
