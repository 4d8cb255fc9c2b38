package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados posibles de una consulta registrados en el histórico.
const (
	LookupOutcomeOK          = "ok"
	LookupOutcomeInvalid     = "invalid"
	LookupOutcomeNotFound    = "not_found"
	LookupOutcomeUnavailable = "unavailable"
)

// LookupLogCNPJMaxLen longitud máxima del CNPJ guardado en el histórico (columna cnpj_lookups.cnpj).
const LookupLogCNPJMaxLen = 20

// LookupLog entrada del histórico de consultas. El régimen se guarda solo como
// auditoría; nunca se relee para responder otra consulta.
type LookupLog struct {
	ID           string
	CNPJ         string // normalizado; si no fue válido, sus dígitos truncados a LookupLogCNPJMaxLen
	Headquarters string // CNPJ de la matriz consultada; vacío si no aplica
	LegalName    string
	Regime       string
	Status       string
	ShareCapital decimal.NullDecimal
	Outcome      string // ver LookupOutcome*
	CreatedAt    time.Time
}
