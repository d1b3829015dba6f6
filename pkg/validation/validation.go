// Package validation validadores de entrada reutilizables en la capa HTTP y en los servicios.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

// ExportFormat formato de exportación soportado.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
)

var (
	ErrEmailRequired       = errors.New("Email address is required")
	ErrEmailInvalid        = errors.New("Invalid email address format")
	ErrInvalidExportFormat = errors.New("Invalid export format. Supported formats are: excel, csv")
)

// ValidateEmail exige un correo no vacío con formato válido.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ParseExportFormat acepta "excel" o "csv" sin distinguir mayúsculas.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatExcel:
		return FormatExcel, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", ErrInvalidExportFormat
	}
}
