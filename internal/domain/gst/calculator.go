// Package gst calcula el impuesto indio GST (CGST/SGST intra-estatal, IGST inter-estatal).
// Funciones puras, sin redondeo interno.
package gst

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jhoicas/invoizo-api/internal/domain"
	"github.com/jhoicas/invoizo-api/internal/domain/entity"
)

const (
	MinRate = 0.0
	MaxRate = 28.0
)

var gstNumberPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// ItemGST desglose de GST para una base imponible.
type ItemGST struct {
	CGST         float64
	SGST         float64
	IGST         float64
	Total        float64
	TotalWithGST float64
}

// ValidateRate exige 0 <= rate <= 28.
func ValidateRate(rate float64) error {
	if rate < MinRate || rate > MaxRate || math.IsNaN(rate) {
		return fmt.Errorf("%w: GST rate must be between 0 and 28 percent", domain.ErrInvalidInput)
	}
	return nil
}

// CalculateItemGST calcula el GST de amount a la tasa gstRate.
// INTRA_STATE reparte por mitades en CGST y SGST; INTER_STATE va entero a IGST.
func CalculateItemGST(amount, gstRate float64, tt entity.TransactionType) (ItemGST, error) {
	if err := ValidateRate(gstRate); err != nil {
		return ItemGST{}, err
	}
	gstAmount := amount * gstRate / 100
	var out ItemGST
	if tt == entity.InterState {
		out.IGST = gstAmount
	} else {
		out.CGST = gstAmount / 2
		out.SGST = gstAmount / 2
	}
	out.Total = out.CGST + out.SGST + out.IGST
	out.TotalWithGST = amount + out.Total
	return out, nil
}

// ApplyToItems recalcula los campos derivados de cada línea (base = qty * amount).
// Si una línea falla no se modifica ninguna.
func ApplyToItems(items []entity.Item, tt entity.TransactionType) error {
	results := make([]ItemGST, len(items))
	for i, it := range items {
		r, err := CalculateItemGST(it.Base(), it.GSTRate, tt)
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		results[i] = r
	}
	for i := range items {
		items[i].CGSTAmount = results[i].CGST
		items[i].SGSTAmount = results[i].SGST
		items[i].IGSTAmount = results[i].IGST
		items[i].TotalWithGST = results[i].TotalWithGST
	}
	return nil
}

// CalculateInvoiceGST suma los campos derivados de todas las líneas. Lista vacía => ceros.
func CalculateInvoiceGST(items []entity.Item) entity.GSTDetails {
	var d entity.GSTDetails
	for _, it := range items {
		d.CGSTTotal += it.CGSTAmount
		d.SGSTTotal += it.SGSTAmount
		d.IGSTTotal += it.IGSTAmount
	}
	d.GSTTotal = d.CGSTTotal + d.SGSTTotal + d.IGSTTotal
	return d
}

// ValidateGSTNumber valida el GSTIN (15 caracteres). Vacío es válido: el campo es opcional.
func ValidateGSTNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !gstNumberPattern.MatchString(s) {
		return fmt.Errorf("%w: Invalid GST number format. Expected format: 22AAAAA0000A1Z5", domain.ErrInvalidInput)
	}
	return nil
}
