package reporting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoizo-api/internal/application/invoicing"
	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/internal/infrastructure/memory"
)

type stubRenderer struct {
	got *entity.Invoice
	err error
}

func (s *stubRenderer) RenderInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	s.got = inv
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.3"), nil
}

func setupPDF(t *testing.T, renderer reporting.InvoicePDFRenderer) *reporting.PDFUseCase {
	t.Helper()
	repo := memory.NewInvoiceRepository()
	_, err := repo.Save(context.Background(), &entity.Invoice{ID: "a1", OwnerID: "user-a", Invoice: entity.InvoiceDetails{Number: "INV/2024 001"}})
	require.NoError(t, err)
	return reporting.NewPDFUseCase(invoicing.NewService(repo, nil, nil), renderer, nil)
}

// ─── Render ───────────────────────────────────────────────────────────────────

func TestPDF_RenderFacturaPropia(t *testing.T) {
	r := &stubRenderer{}
	res, err := setupPDF(t, r).Render(context.Background(), "user-a", "a1")
	require.NoError(t, err)

	assert.Equal(t, "a1", r.got.ID)
	assert.Equal(t, reporting.ContentTypePDF, res.ContentType)
	assert.Equal(t, "invoice_INV_2024_001.pdf", res.Filename)
	assert.Equal(t, []byte("%PDF-1.3"), res.Data)
}

func TestPDF_FacturaAjena_NotFound(t *testing.T) {
	_, err := setupPDF(t, &stubRenderer{}).Render(context.Background(), "user-b", "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPDF_Errores(t *testing.T) {
	uc := setupPDF(t, &stubRenderer{})

	_, err := uc.Render(context.Background(), "", "a1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Render(context.Background(), "user-a", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = setupPDF(t, &stubRenderer{err: errors.New("boom")}).Render(context.Background(), "user-a", "a1")
	assert.ErrorIs(t, err, domain.ErrExportGeneration)
}

func TestPDFFilename_SinNumeroUsaID(t *testing.T) {
	assert.Equal(t, "invoice_abc.pdf", reporting.PDFFilename("", "abc"))
	assert.Equal(t, "invoice_A-1.pdf", reporting.PDFFilename(" A-1 ", "abc"))
}
