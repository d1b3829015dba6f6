// Package export genera los archivos Excel y CSV de facturas.
package export

import (
	"strconv"

	"github.com/jhoicas/invoizo-api/internal/application/reporting"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
	"github.com/jhoicas/invoizo-api/pkg/logger"
)

var _ reporting.InvoiceExporter = (*Exporter)(nil)

// Headers orden fijo de columnas.
var Headers = []string{
	"Invoice Number", "Date", "Due Date", "Customer Name",
	"Customer Phone", "Customer Address", "Amount", "Tax",
	"Total", "Status", "Company Name", "GST Number",
	"Transaction Type", "CGST Total", "SGST Total", "IGST Total",
}

// Exporter implementa reporting.InvoiceExporter.
type Exporter struct {
	log *logger.Logger
}

// NewExporter construye el exportador.
func NewExporter(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{log: log.WithComponent("export")}
}

// row valores tipados de una factura, en el orden de Headers.
type row struct {
	number, date, dueDate          string
	customer, phone, address       string
	amount, tax, total             float64
	status, company, gstNumber, tt string
	cgst, sgst, igst               float64
}

func buildRow(inv *entity.Invoice) row {
	r := row{
		number:    inv.Invoice.Number,
		date:      inv.Invoice.Date,
		dueDate:   inv.Invoice.DueDate,
		customer:  inv.Billing.Name,
		phone:     inv.Billing.Phone,
		address:   inv.Billing.Address,
		amount:    inv.Subtotal(),
		tax:       inv.Tax,
		total:     inv.GrandTotal(),
		status:    string(inv.EffectiveStatus()),
		company:   inv.Company.Name,
		gstNumber: inv.CompanyGSTNumber,
		tt:        string(inv.TransactionType),
	}
	if inv.GSTDetails != nil {
		r.cgst = inv.GSTDetails.CGSTTotal
		r.sgst = inv.GSTDetails.SGSTTotal
		r.igst = inv.GSTDetails.IGSTTotal
	}
	return r
}

// cells valores para celdas Excel (los importes quedan numéricos).
func (r row) cells() []interface{} {
	return []interface{}{
		r.number, r.date, r.dueDate, r.customer, r.phone, r.address,
		r.amount, r.tax, r.total,
		r.status, r.company, r.gstNumber, r.tt,
		r.cgst, r.sgst, r.igst,
	}
}

// strings valores como texto (CSV y ancho de columnas).
func (r row) strings() []string {
	return []string{
		r.number, r.date, r.dueDate, r.customer, r.phone, r.address,
		formatAmount(r.amount), formatAmount(r.tax), formatAmount(r.total),
		r.status, r.company, r.gstNumber, r.tt,
		formatAmount(r.cgst), formatAmount(r.sgst), formatAmount(r.igst),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
