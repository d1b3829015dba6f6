package reminder

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

const paymentOptions = "\n\nPayment Options:" +
	"\n1. Online Payment: Use the payment button in your invoice dashboard" +
	"\n2. Cash Payment: Pay by cash and inform us once the payment is made." +
	"\n\nTo make an online payment, please log in to your account and use the payment button."

// FormatAmount redondea a 2 decimales (half-up) con agrupación en-IN.
func FormatAmount(v float64) string {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return printer.Sprintf("%.2f", rounded)
}

// Subject asunto del recordatorio.
func Subject(inv *entity.Invoice, t entity.ReminderType) string {
	n := inv.Invoice.Number
	switch t {
	case entity.ReminderTwoDaysBefore:
		return "Payment Reminder: Invoice #" + n + " - Due in 2 Days"
	case entity.ReminderDueDate:
		return "Payment Due Today: Invoice #" + n
	default:
		return "Overdue Payment: Invoice #" + n
	}
}

// Body cuerpo del recordatorio, incluidas las opciones de pago.
func Body(inv *entity.Invoice, t entity.ReminderType) string {
	number := inv.Invoice.Number
	due := inv.Invoice.DueDate
	company := inv.Company.Name
	amount := FormatAmount(amountDue(inv))

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", inv.Billing.Name)
	switch t {
	case entity.ReminderTwoDaysBefore:
		fmt.Fprintf(&b, "This is a friendly reminder that your invoice #%s from %s is due in 2 days on %s.\n\n", number, company, due)
	case entity.ReminderDueDate:
		fmt.Fprintf(&b, "Your invoice #%s from %s is due today (%s).\n\n", number, company, due)
	default:
		fmt.Fprintf(&b, "Your invoice #%s from %s was due on %s and is now overdue.\n\n", number, company, due)
	}
	fmt.Fprintf(&b, "Invoice Amount: ₹%s\nDue Date: %s\n\n", amount, due)
	switch t {
	case entity.ReminderTwoDaysBefore:
		b.WriteString("Please ensure timely payment to avoid any inconvenience.")
	case entity.ReminderDueDate:
		b.WriteString("Please make the payment at your earliest convenience.")
	default:
		b.WriteString("Please make the payment immediately to avoid any late fees or service disruption.")
	}
	b.WriteString("\n\nThank you for your business!\n\nBest regards,\n")
	b.WriteString(company)
	b.WriteString(paymentOptions)
	return b.String()
}

// amountDue total registrado en el pago o, si no hay, subtotal + GST + impuesto plano.
func amountDue(inv *entity.Invoice) float64 {
	if inv.PaymentDetails != nil && inv.PaymentDetails.TotalAmount > 0 {
		return inv.PaymentDetails.TotalAmount
	}
	total := inv.Subtotal() + inv.Tax
	if inv.GSTDetails != nil {
		total += inv.GSTDetails.GSTTotal
	}
	return total
}
