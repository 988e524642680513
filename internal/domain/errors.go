package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrMissingData         = errors.New("stock ausente en una fuente requerida")
	ErrDivisionByZero      = errors.New("división por cero")
	ErrExternalService     = errors.New("servicio externo no disponible")
	ErrDataShape           = errors.New("forma de tabla inválida")
	ErrInsufficientHistory = errors.New("historial insuficiente para pronosticar")
	ErrRunInProgress       = errors.New("ya hay una ejecución en curso")
)

// MissingDataError detalla un stock relevante que no aparece en todas las fuentes de costo.
// Se reporta y se cuenta, pero la conciliación continúa sin él.
type MissingDataError struct {
	Stock   string
	Sources []string // fuentes donde falta: base, previous, current
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("stock %q ausente en: %s", e.Stock, strings.Join(e.Sources, ", "))
}

func (e *MissingDataError) Unwrap() error { return ErrMissingData }

// DivisionByZeroError se produce cuando un divisor es cero (costo actual o pronóstico puntual).
type DivisionByZeroError struct {
	Stock string
	Op    string // "percentage_change" | "forecast_accuracy"
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s de %q: divisor cero", e.Op, e.Stock)
}

func (e *DivisionByZeroError) Unwrap() error { return ErrDivisionByZero }

// DataShapeError indica una tabla sin la columna esperada, filas con longitud inconsistente
// o celdas que no se pueden interpretar.
type DataShapeError struct {
	Table  string
	Column string
	Row    int // 1-based, incluyendo el encabezado; 0 si aplica a toda la tabla
	Reason string
}

func (e *DataShapeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tabla %q", e.Table)
	if e.Column != "" {
		fmt.Fprintf(&b, ", columna %q", e.Column)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ", fila %d", e.Row)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *DataShapeError) Unwrap() error { return ErrDataShape }

// ExternalServiceError envuelve fallos del almacén tabular, el notificador u otros adaptadores.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
}

// Unwrap expone tanto el sentinel como la causa original.
func (e *ExternalServiceError) Unwrap() []error { return []error{ErrExternalService, e.Err} }

// External construye un ExternalServiceError; devuelve nil si err es nil.
func External(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Service: service, Op: op, Err: err}
}
