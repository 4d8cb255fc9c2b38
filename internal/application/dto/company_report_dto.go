package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyReport salida de una consulta de CNPJ para la capa de presentación.
// Valores estructurados sin formatear; los campos vacíos se presentan como "N/A" en la vista.
type CompanyReport struct {
	CNPJ             string `json:"cnpj"`
	CNPJMasked       string `json:"cnpj_masked"`
	IsHeadquarters   bool   `json:"is_headquarters"`
	HeadquartersCNPJ string `json:"headquarters_cnpj"`
	// RegimeSource "headquarters" si el régimen se resolvió con la matriz, "queried" en otro caso.
	RegimeSource           string `json:"regime_source"`
	HeadquartersLookupFail bool   `json:"headquarters_lookup_failed,omitempty"`

	LegalName   string `json:"legal_name"`
	DisplayName string `json:"display_name"`
	TradeName   string `json:"trade_name"`

	Regime         string `json:"regime"`
	RegimeCategory string `json:"regime_category"`
	Status         string `json:"status"`
	StatusText     string `json:"status_text"`

	ActivityStartDate   string           `json:"activity_start_date"`
	PrimaryActivity     ActivityDTO      `json:"primary_activity"`
	SecondaryActivities []ActivityDTO    `json:"secondary_activities"`
	LegalNature         string           `json:"legal_nature"`
	ShareCapital        *decimal.Decimal `json:"share_capital,omitempty"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	SimplesOption       bool             `json:"simples_option"`
	MEIOption           bool             `json:"mei_option"`
	Address             AddressDTO       `json:"address"`

	StateRegistrations          []StateRegistrationDTO `json:"state_registrations"`
	StateRegistrationsAvailable bool                   `json:"state_registrations_available"`

	QueriedAt time.Time `json:"queried_at"`
}

// ActivityDTO código CNAE y descripción.
type ActivityDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// AddressDTO dirección del establecimiento.
type AddressDTO struct {
	StreetType string `json:"street_type"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// StateRegistrationDTO inscripción estadual.
type StateRegistrationDTO struct {
	State   string `json:"state"`
	Number  string `json:"number"`
	Status  string `json:"status"`
	Type    string `json:"type"`
	Enabled bool   `json:"enabled"`
}
