package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("Invoice not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrUnauthorized            = errors.New("Authentication required")
	ErrForbidden               = errors.New("Access denied")
	ErrExportGeneration        = errors.New("export generation failed")
	// ErrEmptyExport envuelve ErrExportGeneration: la exportación sin facturas es un fallo de generación.
	ErrEmptyExport = fmt.Errorf("%w: No invoices provided for export", ErrExportGeneration)
)

// TransientKind clasifica un fallo transitorio de infraestructura.
type TransientKind int

const (
	TransientTimeout TransientKind = iota + 1
	TransientConnection
	TransientUnavailable
)

func (k TransientKind) String() string {
	switch k {
	case TransientTimeout:
		return "timeout"
	case TransientConnection:
		return "connection"
	case TransientUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// TransientError lo producen los adaptadores de persistencia cuando el fallo puede
// resolverse reintentando (timeout, conexión caída, servicio no disponible).
type TransientError struct {
	Kind TransientKind
	Op   string
	Err  error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransient construye un TransientError.
func NewTransient(kind TransientKind, op string, err error) *TransientError {
	return &TransientError{Kind: kind, Op: op, Err: err}
}

// DatabaseConnectionError es el error de infraestructura que llega a los llamadores
// cuando la persistencia falla; Retryable indica si el fallo era transitorio.
type DatabaseConnectionError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *DatabaseConnectionError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("database operation %q failed after retries: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("database operation %q failed: %v", e.Op, e.Err)
}

func (e *DatabaseConnectionError) Unwrap() error { return e.Err }

// IsDomainError indica si err pertenece a la taxonomía de dominio (validación, no
// encontrado, autorización, exportación). Estos errores nunca se reintentan.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrExportGeneration)
}
