package reporting_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/export"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/memory"
	"github.com/jhoicas/invoizo-api/pkg/validation"
)

func setup(t *testing.T) *reporting.ExportUseCase {
	t.Helper()
	repo := memory.NewInvoiceRepository()
	for _, inv := range []*entity.Invoice{
		{ID: "a1", OwnerID: "user-a", Invoice: entity.InvoiceDetails{Number: "A-1"}},
		{ID: "a2", OwnerID: "user-a", Invoice: entity.InvoiceDetails{Number: "A-2"}},
		{ID: "b1", OwnerID: "user-b", Invoice: entity.InvoiceDetails{Number: "B-1"}},
	} {
		_, err := repo.Save(context.Background(), inv)
		require.NoError(t, err)
	}
	svc := invoicing.NewService(repo, nil, nil)
	return reporting.NewExportUseCase(svc, export.NewExporter(nil), nil)
}

func TestExport_CSVSoloDelDueno(t *testing.T) {
	uc := setup(t)
	res, err := uc.Export(context.Background(), "user-a", "csv", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, reporting.ContentTypeCSV, res.ContentType)
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"))
	assert.Contains(t, string(res.Data), "A-1")
	assert.NotContains(t, string(res.Data), "B-1")
}

func TestExport_FiltroPorIDs(t *testing.T) {
	uc := setup(t)
	res, err := uc.Export(context.Background(), "user-a", "EXCEL", []string{" a2 , ", "b1"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, reporting.ContentTypeExcel, res.ContentType)
	assert.True(t, strings.HasPrefix(res.Filename, "invoices_"))
}

func TestExport_Errores(t *testing.T) {
	uc := setup(t)

	_, err := uc.Export(context.Background(), "", "csv", nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Export(context.Background(), "user-a", "pdf", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, validation.ErrInvalidExportFormat)

	_, err = uc.Export(context.Background(), "user-c", "csv", nil)
	assert.ErrorIs(t, err, reporting.ErrNothingToExport)

	_, err = uc.Export(context.Background(), "user-a", "csv", []string{"b1"})
	assert.ErrorIs(t, err, reporting.ErrNothingToExport)
}

func TestFilename(t *testing.T) {
	local := time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "invoices_2026-03-09.xlsx", reporting.Filename(local, "xlsx"))
}

func TestCleanIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, reporting.CleanIDs([]string{"a,b", " ", "c,"}))
	assert.Nil(t, reporting.CleanIDs(nil))
}
