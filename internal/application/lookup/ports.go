package lookup

import "time"

// Metrics puerto de observabilidad del caso de uso. nil desactiva las métricas.
type Metrics interface {
	ObserveLookup(outcome string, elapsed time.Duration)
	HeadquartersFallback()
}
