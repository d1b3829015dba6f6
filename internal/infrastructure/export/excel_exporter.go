package export

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// SheetName hoja única del libro exportado.
const SheetName = "Invoices"

const (
	minColWidth = 10
	maxColWidth = 60
)

// ExportToExcel genera un .xlsx con cabecera en negrita blanca sobre azul oscuro.
// Una fila que no se puede escribir se registra y se omite.
func (e *Exporter) ExportToExcel(ctx context.Context, invoices []*entity.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, domain.ErrEmptyExport
	}
	e.log.Info().Int("count", len(invoices)).Msg("starting excel export")

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, generationError("rename sheet", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F3864"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, generationError("header style", err)
	}

	header := make([]interface{}, len(Headers))
	widths := make([]int, len(Headers))
	for i, h := range Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, generationError("header row", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, generationError("header style", err)
	}

	rowNum := 2
	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if inv == nil {
			e.log.Error().Int("row", rowNum).Msg("nil invoice in export, skipping row")
			continue
		}
		r := buildRow(inv)
		cells := r.cells()
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			e.log.Error().Err(err).Str("invoice_id", inv.ID).Msg("error populating excel row, skipping")
			continue
		}
		for i, s := range r.strings() {
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
		rowNum++
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, float64(clamp(w+2, minColWidth, maxColWidth))); err != nil {
			e.log.Warn().Err(err).Str("column", col).Msg("failed to size column")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, generationError("write workbook", err)
	}
	e.log.Info().Int("rows", rowNum-2).Msg("excel export completed")
	return buf.Bytes(), nil
}

func generationError(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrExportGeneration, step, err)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
