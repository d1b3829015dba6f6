package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/export"
)

func invoices(n int) []*entity.Invoice {
	out := make([]*entity.Invoice, n)
	for i := range out {
		out[i] = &entity.Invoice{
			ID:              fmt.Sprintf("inv-%d", i),
			Invoice:         entity.InvoiceDetails{Number: fmt.Sprintf("INV-%04d", i), Date: "2026-05-01", DueDate: "2026-05-15"},
			Billing:         entity.Party{Name: "Ravi Kumar", Phone: "9999999999", Address: "12 MG Road"},
			Company:         entity.Party{Name: "Acme"},
			Items:           []entity.Item{{Qty: 2, Amount: 500}},
			Tax:             10,
			Status:          entity.StatusSent,
			TransactionType: entity.IntraState,
			GSTDetails:      &entity.GSTDetails{CGSTTotal: 90, SGSTTotal: 90, GSTTotal: 180},
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExportToCSV_CabeceraYFilas(t *testing.T) {
	data, err := export.NewExporter(nil).ExportToCSV(context.Background(), invoices(3))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "\r\n")
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Invoice Number,Date,Due Date,Customer Name,Customer Phone,Customer Address,Amount,Tax,Total,Status,Company Name,GST Number,Transaction Type,CGST Total,SGST Total,IGST Total", lines[0])
	assert.Equal(t, "INV-0000,2026-05-01,2026-05-15,Ravi Kumar,9999999999,12 MG Road,1000,10,1180,SENT,Acme,,INTRA_STATE,90,90,0", lines[1])
}

func TestExportToCSV_TotalSinGSTUsaTaxYEstadoPorDefecto(t *testing.T) {
	inv := invoices(1)[0]
	inv.GSTDetails = nil
	inv.Status = ""

	data, err := export.NewExporter(nil).ExportToCSV(context.Background(), []*entity.Invoice{inv})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1010", records[1][8])
	assert.Equal(t, "DRAFT", records[1][9])
	assert.Equal(t, []string{"0", "0", "0"}, records[1][13:])
}

func TestExportToCSV_Escapado(t *testing.T) {
	inv := invoices(1)[0]
	inv.Billing.Name = `Kumar, "Ravi"`
	inv.Billing.Address = "Line 1\nLine 2"
	inv.Company.Name = "Acme\rCorp"

	data, err := export.NewExporter(nil).ExportToCSV(context.Background(), []*entity.Invoice{inv})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Kumar, ""Ravi"""`)
	assert.Contains(t, string(data), "\"Line 1\nLine 2\"")

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Len(t, records[1], len(export.Headers))
	assert.Equal(t, `Kumar, "Ravi"`, records[1][3])
	assert.Equal(t, "Line 1\nLine 2", records[1][5])
}

func TestExport_VacioFalla(t *testing.T) {
	ex := export.NewExporter(nil)
	_, err := ex.ExportToCSV(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrEmptyExport)
	assert.ErrorIs(t, err, domain.ErrExportGeneration)

	_, err = ex.ExportToExcel(context.Background(), []*entity.Invoice{})
	assert.ErrorIs(t, err, domain.ErrEmptyExport)
	assert.Contains(t, err.Error(), "No invoices provided for export")
}

// ──────────────────────────────────────────────────────────────────────────────
// Excel
// ──────────────────────────────────────────────────────────────────────────────

func TestExportToExcel_HojaCabeceraYFilas(t *testing.T) {
	data, err := export.NewExporter(nil).ExportToExcel(context.Background(), invoices(5))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Invoices"}, f.GetSheetList())
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, export.Headers, rows[0])
	assert.Equal(t, "INV-0000", rows[1][0])
	assert.Equal(t, "INV-0004", rows[5][0])
	assert.Equal(t, "1180", rows[1][8])
	assert.Equal(t, "SENT", rows[1][9])

	styleID, err := f.GetCellStyle(export.SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExportToExcel_OmiteFilasNil(t *testing.T) {
	list := invoices(2)
	list = append([]*entity.Invoice{nil}, list...)

	data, err := export.NewExporter(nil).ExportToExcel(context.Background(), list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "INV-0000", rows[1][0])
}

func TestExport_MilFacturas(t *testing.T) {
	list := invoices(1000)
	ex := export.NewExporter(nil)

	start := time.Now()
	xlsx, err := ex.ExportToExcel(context.Background(), list)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 30*time.Second)
	assert.NotEmpty(t, xlsx)

	start = time.Now()
	data, err := ex.ExportToCSV(context.Background(), list)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
	assert.Equal(t, 1001, strings.Count(string(data), "\n"))
}
