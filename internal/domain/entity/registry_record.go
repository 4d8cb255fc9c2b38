package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistryRecord instantánea de solo lectura devuelta por el gateway de registro para un CNPJ.
// Los campos vacíos significan "ausente"; el "N/A" se aplica al presentar, no aquí.
type RegistryRecord struct {
	CNPJ              string // 14 dígitos; vacío si la respuesta no trajo identificador
	LegalName         string // razão social
	TradeName         string // nome fantasia
	Status            string // texto libre: "ATIVA", "BAIXADA", ...
	ActivityStartDate string // AAAA-MM-DD tal como lo entrega el registro
	PrimaryActivity   Activity
	SecondaryActivity []Activity
	LegalNature       string
	ShareCapital      decimal.NullDecimal
	Email             string
	Phone             string
	Address           Address
	SimplesOption     bool // opção pelo Simples Nacional
	MEIOption         bool // opção pelo MEI
	RegimeHistory     []RegimeEntry
	FetchedAt         time.Time
}

// HasIdentifier informa si el registro trae el campo CNPJ.
func (r *RegistryRecord) HasIdentifier() bool {
	return r != nil && r.CNPJ != ""
}

// Activity código CNAE con su descripción.
type Activity struct {
	Code        string
	Description string
}

// Address dirección del establecimiento.
type Address struct {
	StreetType string // descricao_tipo_de_logradouro
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string // UF
	ZipCode    string
}

// RegimeEntry entrada histórica (año, forma de tributación).
// Year es nil cuando el registro no trae un entero válido.
type RegimeEntry struct {
	Year *int
	Form string
}

// StateRegistration inscripción estadual (IE) de un establecimiento.
type StateRegistration struct {
	State   string
	Number  string
	Status  string
	Type    string
	Enabled bool
}
