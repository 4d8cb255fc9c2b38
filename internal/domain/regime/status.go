package regime

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Status situación cadastral canónica.
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusUnfit        Status = "UNFIT"
	StatusSuspended    Status = "SUSPENDED"
	StatusDeregistered Status = "DEREGISTERED"
)

// el orden importa: las etiquetas no son subcadenas mutuamente excluyentes.
var statusRules = []struct {
	status   Status
	keywords []string
}{
	{StatusActive, []string{"ACTIVE", "ATIVA"}},
	{StatusUnfit, []string{"UNFIT", "INAPTA"}},
	{StatusSuspended, []string{"SUSPENDED", "SUSPENS"}},
	{StatusDeregistered, []string{"DEREGISTERED", "BAIXADA"}},
}

// NormalizeStatus clasifica el texto libre de situación por subcadena, sin distinguir
// mayúsculas ni acentos. Sin coincidencia devuelve el texto original en mayúsculas;
// vacío devuelve "N/A".
func NormalizeStatus(text string) Status {
	text = strings.TrimSpace(text)
	if text == "" {
		return Status(NotAvailable)
	}
	folded := strings.ToUpper(foldAccents(text))
	for _, rule := range statusRules {
		for _, kw := range rule.keywords {
			if strings.Contains(folded, kw) {
				return rule.status
			}
		}
	}
	return Status(upper(text))
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
