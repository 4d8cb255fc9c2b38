// Package regime resuelve el régimen tributario canónico de una empresa a partir
// de los registros devueltos por el registro público, y normaliza la situación cadastral.
//
// El régimen es propiedad de la empresa (raíz del CNPJ), no del establecimiento:
// si se consultó una filial y la matriz respondió, la matriz es el registro autoritativo.
package regime

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
)

// Etiquetas de régimen.
const (
	NotAvailable = "N/A"
	MEI          = "MEI"
	Simples      = "SIMPLES NACIONAL"
)

// Authoritative elige el registro sobre el que se resuelve el régimen: la matriz
// si existe y trae identificador; si no, el registro consultado.
func Authoritative(record, headquarters *entity.RegistryRecord) *entity.RegistryRecord {
	if headquarters.HasIdentifier() {
		return headquarters
	}
	return record
}

// Resolve devuelve la etiqueta de régimen usando el año calendario actual.
func Resolve(record, headquarters *entity.RegistryRecord) string {
	return ResolveAt(record, headquarters, time.Now().Year())
}

// ResolveAt aplica la precedencia MEI > Simples > histórico > N/A sobre el registro autoritativo.
func ResolveAt(record, headquarters *entity.RegistryRecord, currentYear int) string {
	r := Authoritative(record, headquarters)
	if r == nil {
		return NotAvailable
	}
	switch {
	case r.MEIOption:
		return MEI
	case r.SimplesOption:
		return Simples
	case len(r.RegimeHistory) > 0:
		return fromHistory(r.RegimeHistory, currentYear)
	default:
		return NotAvailable
	}
}

// fromHistory toma la entrada del año objetivo: el mayor año <= currentYear o,
// si todos son futuros, el mayor año de la lista. Ante empates gana la última en orden.
func fromHistory(history []entity.RegimeEntry, currentYear int) string {
	var (
		maxPast, maxAll   int
		hasPast, hasYears bool
	)
	for _, e := range history {
		if e.Year == nil {
			continue
		}
		y := *e.Year
		if !hasYears || y > maxAll {
			maxAll = y
		}
		hasYears = true
		if y <= currentYear && (!hasPast || y > maxPast) {
			maxPast = y
			hasPast = true
		}
	}

	// Si todos los años son futuros se usa el mayor de todos.
	target := maxAll
	if hasPast {
		target = maxPast
	}

	chosen := history[len(history)-1]
	if hasYears {
		for i := len(history) - 1; i >= 0; i-- {
			if y := history[i].Year; y != nil && *y == target {
				chosen = history[i]
				break
			}
		}
	}
	if chosen.Form == "" {
		return NotAvailable
	}
	return upper(chosen.Form)
}

func upper(s string) string {
	return cases.Upper(language.BrazilianPortuguese).String(s)
}
