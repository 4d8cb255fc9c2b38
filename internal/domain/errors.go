package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound    = errors.New("recurso no encontrado")
	ErrInvalidCNPJ = errors.New("CNPJ inválido")
	ErrUnavailable = errors.New("registro no disponible")
)

// LookupErrorKind clasifica los fallos de una consulta al registro.
type LookupErrorKind string

const (
	// LookupNotFound el CNPJ no tiene empresa registrada.
	LookupNotFound LookupErrorKind = "not_found"
	// LookupUnavailable fallo transitorio: timeout, conexión o status 5xx.
	LookupUnavailable LookupErrorKind = "unavailable"
	// LookupMalformed respuesta con forma inesperada. Se trata como Unavailable.
	LookupMalformed LookupErrorKind = "malformed"
)

// LookupError error normalizado devuelto por los gateways de registro.
type LookupError struct {
	Kind   LookupErrorKind
	Source string // brasilapi, cnpja, cache...
	CNPJ   string
	Err    error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s] %s: %v", e.Source, e.Kind, e.CNPJ, e.Err)
	}
	return fmt.Sprintf("%s [%s] %s", e.Source, e.Kind, e.CNPJ)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, domain.ErrNotFound) y errors.Is(err, domain.ErrUnavailable).
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == LookupNotFound
	case ErrUnavailable:
		return e.Kind == LookupUnavailable || e.Kind == LookupMalformed
	}
	return false
}

// NewLookupError construye un LookupError.
func NewLookupError(kind LookupErrorKind, source, cnpj string, err error) *LookupError {
	return &LookupError{Kind: kind, Source: source, CNPJ: cnpj, Err: err}
}

// LookupKind extrae la clase del error; cualquier error no tipado cuenta como Unavailable.
func LookupKind(err error) LookupErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return LookupUnavailable
}
