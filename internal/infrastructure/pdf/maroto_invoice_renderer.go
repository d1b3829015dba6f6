// Package pdf genera la factura con GST en PDF (A4) usando Maroto v2.
//
// Layout de la página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + GSTIN      │  TAX INVOICE + N° + fechas   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A                   │  ENVIAR A                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ítem | Cant | Precio | GST% | GST | Total            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / CGST+SGST o IGST / TOTAL                │
//	│  DATOS BANCARIOS + NOTAS                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/invoizo-api/internal/application/reminder"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Helvetica no trae el glifo ₹.
const currency = "INR "

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implementa reporting.InvoicePDFRenderer.
type MarotoInvoiceRenderer struct{}

// NewMarotoInvoiceRenderer construye el renderer.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// RenderInvoicePDF genera el PDF y devuelve sus bytes.
func (r *MarotoInvoiceRenderer) RenderInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(inv), true).
		WithAuthor(nonEmpty(inv.Company.Name, "Invoizo"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(inv.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	if !inv.BankDetails.IsZero() {
		m.AddRows(line.NewRow(3))
		m.AddRows(bankRow(inv.BankDetails))
	}
	if inv.Notes != "" {
		m.AddRows(notesRow(inv.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(inv *entity.Invoice) core.Row {
	left := []core.Component{
		text.New(nonEmpty(inv.Company.Name, "—"), props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New(inv.Company.Address, props.Text{Size: 8, Top: 8, Color: colorGray}),
	}
	if inv.CompanyGSTNumber != "" {
		left = append(left, text.New("GSTIN: "+inv.CompanyGSTNumber, props.Text{
			Size: 8, Top: 13, Color: colorGray,
		}))
	}

	return row.New(22).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New(title(inv), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(inv.Invoice.Number, "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Date: "+nonEmpty(inv.Invoice.Date, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+nonEmpty(inv.Invoice.DueDate, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func partiesRow(inv *entity.Invoice) core.Row {
	party := func(label string, p entity.Party) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(p.Name, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", nonEmpty(p.Address, "—"), nonEmpty(p.Phone, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(party("BILL TO", inv.Billing), party("SHIP TO", inv.Shipping))
}

// tableHeaderRow columnas: 4+1+2+1+2+2 = 12.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("GST%", 1, align.Center),
		h("GST", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func itemRows(items []entity.Item) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		gstAmount := it.CGSTAmount + it.SGSTAmount + it.IGSTAmount
		total := it.TotalWithGST
		if total == 0 {
			total = it.Base() + gstAmount
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Qty), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%g%%", it.GSTRate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(money(gstAmount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money(total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// totalsRow desglosa CGST/SGST en operaciones intraestatales e IGST en las demás.
func totalsRow(inv *entity.Invoice) core.Row {
	type entry struct{ label, value string }
	lines := []entry{{"Subtotal:", money(inv.Subtotal())}}
	switch {
	case inv.GSTDetails == nil:
		lines = append(lines, entry{"Tax:", money(inv.Tax)})
	case inv.TransactionType == entity.InterState:
		lines = append(lines, entry{"IGST:", money(inv.GSTDetails.IGSTTotal)})
	default:
		lines = append(lines,
			entry{"CGST:", money(inv.GSTDetails.CGSTTotal)},
			entry{"SGST:", money(inv.GSTDetails.SGSTTotal)},
		)
	}

	labels := make([]core.Component, 0, len(lines)+1)
	values := make([]core.Component, 0, len(lines)+1)
	for i, l := range lines {
		top := float64(i * 5)
		labels = append(labels, text.New(l.label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values = append(values, text.New(l.value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	top := float64(len(lines) * 5)
	labels = append(labels, text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: top,
	}))
	values = append(values, text.New(money(inv.GrandTotal()), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
	}))

	return row.New(top+8).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

func bankRow(b entity.BankDetails) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("BANK DETAILS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("%s   |   A/C: %s   |   IFSC: %s   |   %s",
			nonEmpty(b.AccountName, "—"),
			nonEmpty(b.AccountNumber, "—"),
			nonEmpty(b.IFSCCode, "—"),
			nonEmpty(b.BankName, "—"),
		), props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

func notesRow(notes string) core.Row {
	return row.New(16).Add(col.New(12).Add(
		text.New("NOTES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func title(inv *entity.Invoice) string {
	return nonEmpty(inv.Title, "TAX INVOICE")
}

func money(v float64) string {
	return currency + reminder.FormatAmount(v)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
