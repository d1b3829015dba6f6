package entity

import (
	"strings"
	"time"
)

// InvoiceStatus estado del ciclo de vida de la factura.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusSent      InvoiceStatus = "SENT"
	StatusViewed    InvoiceStatus = "VIEWED"
	StatusPaid      InvoiceStatus = "PAID"
	StatusOverdue   InvoiceStatus = "OVERDUE"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// AllStatuses lista los estados en el orden del ciclo de vida.
var AllStatuses = []InvoiceStatus{
	StatusDraft, StatusSent, StatusViewed, StatusPaid, StatusOverdue, StatusCancelled,
}

// NormalizeStatus trata el estado vacío como DRAFT.
func NormalizeStatus(s InvoiceStatus) InvoiceStatus {
	if s == "" {
		return StatusDraft
	}
	return s
}

// ParseStatus convierte texto (sin distinguir mayúsculas) a InvoiceStatus.
func ParseStatus(s string) (InvoiceStatus, bool) {
	candidate := InvoiceStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllStatuses {
		if st == candidate {
			return st, true
		}
	}
	return "", false
}

// TransactionType determina el reparto del GST.
type TransactionType string

const (
	IntraState TransactionType = "INTRA_STATE" // CGST + SGST
	InterState TransactionType = "INTER_STATE" // IGST
)

// PaymentMethod medio de pago registrado.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// PaymentStatus estado del cobro.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// ReminderType tipo de recordatorio de pago.
type ReminderType string

const (
	ReminderTwoDaysBefore ReminderType = "TWO_DAYS_BEFORE"
	ReminderDueDate       ReminderType = "DUE_DATE"
	ReminderOverdue       ReminderType = "OVERDUE"
)

// DueDateLayout formato ISO de invoice.dueDate.
const DueDateLayout = "2006-01-02"

// Party datos de emisor, facturación o envío.
type Party struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
}

// InvoiceDetails número y fechas (texto libre salvo DueDate, ISO yyyy-mm-dd).
type InvoiceDetails struct {
	Number  string `json:"number"`
	Date    string `json:"date"`
	DueDate string `json:"dueDate"`
}

// BankDetails datos bancarios del emisor; se cifran en reposo.
type BankDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BankName      string `json:"bankName"`
}

// IsZero indica si no hay datos bancarios.
func (b BankDetails) IsZero() bool {
	return b == BankDetails{}
}

// Item línea de la factura. CGSTAmount, SGSTAmount, IGSTAmount y TotalWithGST son derivados.
type Item struct {
	Name         string  `json:"name"`
	Qty          int     `json:"qty"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	GSTRate      float64 `json:"gstRate"`
	CGSTAmount   float64 `json:"cgstAmount"`
	SGSTAmount   float64 `json:"sgstAmount"`
	IGSTAmount   float64 `json:"igstAmount"`
	TotalWithGST float64 `json:"totalWithGST"`
}

// Base devuelve qty * amount.
func (it Item) Base() float64 {
	return float64(it.Qty) * it.Amount
}

// GSTDetails totales de GST de la factura.
type GSTDetails struct {
	CGSTTotal float64 `json:"cgstTotal"`
	SGSTTotal float64 `json:"sgstTotal"`
	IGSTTotal float64 `json:"igstTotal"`
	GSTTotal  float64 `json:"gstTotal"`
}

// PaymentDetails información de cobro.
type PaymentDetails struct {
	PaymentMethod      PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentStatus      PaymentStatus `json:"paymentStatus,omitempty"`
	TotalAmount        float64       `json:"totalAmount,omitempty"`
	Currency           string        `json:"currency,omitempty"`
	PaymentDate        *time.Time    `json:"paymentDate,omitempty"`
	PaymentLink        string        `json:"paymentLink,omitempty"`
	CashPaymentAllowed bool          `json:"cashPaymentAllowed"`
}

// PaymentReminder registro de un recordatorio enviado (solo se agregan, nunca se editan).
type PaymentReminder struct {
	ID            string       `json:"id"`
	Type          ReminderType `json:"type"`
	ScheduledDate time.Time    `json:"scheduledDate"`
	SentDate      *time.Time   `json:"sentDate,omitempty"`
	Sent          bool         `json:"sent"`
	EmailSubject  string       `json:"emailSubject"`
	EmailBody     string       `json:"emailBody"`
}

// Invoice raíz del agregado; pertenece a un único OwnerID.
type Invoice struct {
	ID               string            `json:"id"`
	OwnerID          string            `json:"ownerId"`
	Title            string            `json:"title,omitempty"`
	Template         string            `json:"template,omitempty"`
	Company          Party             `json:"company"`
	Billing          Party             `json:"billing"`
	Shipping         Party             `json:"shipping"`
	Invoice          InvoiceDetails    `json:"invoice"`
	BankDetails      BankDetails       `json:"bankDetails"`
	Items            []Item            `json:"items"`
	Notes            string            `json:"notes,omitempty"`
	Logo             string            `json:"logo,omitempty"`
	ThumbnailURL     string            `json:"thumbnailUrl,omitempty"`
	Tax              float64           `json:"tax"`
	TransactionType  TransactionType   `json:"transactionType"`
	CompanyGSTNumber string            `json:"companyGSTNumber,omitempty"`
	GSTDetails       *GSTDetails       `json:"gstDetails,omitempty"`
	Status           InvoiceStatus     `json:"status"`
	SentAt           *time.Time        `json:"sentAt,omitempty"`
	PaidAt           *time.Time        `json:"paidAt,omitempty"`
	CancelledAt      *time.Time        `json:"cancelledAt,omitempty"`
	PaymentDetails   *PaymentDetails   `json:"paymentDetails,omitempty"`
	PaymentReminders []PaymentReminder `json:"paymentReminders,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	LastUpdatedAt    time.Time         `json:"lastUpdatedAt"`
}

// EffectiveStatus devuelve el estado con vacío = DRAFT.
func (i *Invoice) EffectiveStatus() InvoiceStatus {
	return NormalizeStatus(i.Status)
}

// DueDate interpreta invoice.dueDate en loc. ok=false si falta o no es ISO.
func (i *Invoice) DueDate(loc *time.Location) (time.Time, bool) {
	raw := strings.TrimSpace(i.Invoice.DueDate)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DueDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasReminder indica si ya se envió un recordatorio del tipo dado.
func (i *Invoice) HasReminder(t ReminderType) bool {
	for _, r := range i.PaymentReminders {
		if r.Type == t && r.Sent {
			return true
		}
	}
	return false
}

// Subtotal suma qty*amount de todas las líneas.
func (i *Invoice) Subtotal() float64 {
	var sum float64
	for _, it := range i.Items {
		sum += it.Base()
	}
	return sum
}

// GrandTotal subtotal más GST (si hay detalle) o el impuesto plano heredado.
func (i *Invoice) GrandTotal() float64 {
	if i.GSTDetails != nil {
		return i.Subtotal() + i.GSTDetails.GSTTotal
	}
	return i.Subtotal() + i.Tax
}
