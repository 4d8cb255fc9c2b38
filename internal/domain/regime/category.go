package regime

import "strings"

// Category agrupa una etiqueta de régimen para la presentación (color del distintivo).
type Category string

const (
	CategoryLucroReal      Category = "LUCRO_REAL"
	CategoryLucroPresumido Category = "LUCRO_PRESUMIDO"
	CategorySimples        Category = "SIMPLES"
	CategoryMEI            Category = "MEI"
	CategoryOther          Category = "OTHER"
)

// CategoryOf clasifica label por subcadena en el orden Lucro Real, Lucro Presumido, Simples, MEI.
func CategoryOf(label string) Category {
	u := strings.ToUpper(label)
	switch {
	case strings.Contains(u, "LUCRO REAL"):
		return CategoryLucroReal
	case strings.Contains(u, "LUCRO PRESUMIDO"):
		return CategoryLucroPresumido
	case strings.Contains(u, "SIMPLES"):
		return CategorySimples
	case strings.Contains(u, "MEI"):
		return CategoryMEI
	default:
		return CategoryOther
	}
}
