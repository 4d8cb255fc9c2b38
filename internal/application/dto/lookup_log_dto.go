package dto

import "time"

// LookupLogResponse entrada del histórico de consultas.
type LookupLogResponse struct {
	ID           string    `json:"id"`
	CNPJ         string    `json:"cnpj"`
	Headquarters string    `json:"headquarters_cnpj,omitempty"`
	LegalName    string    `json:"legal_name,omitempty"`
	Regime       string    `json:"regime,omitempty"`
	Status       string    `json:"status,omitempty"`
	Outcome      string    `json:"outcome"`
	CreatedAt    time.Time `json:"created_at"`
}

// LookupLogListResponse lista paginada del histórico.
type LookupLogListResponse struct {
	Items []LookupLogResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
