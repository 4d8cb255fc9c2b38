package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/cache"
)

var (
	_ lookup.Metrics = (*Metrics)(nil)
	_ cache.Observer = (*Metrics)(nil)
)

// Metrics agrupa las métricas Prometheus del servicio sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	Lookups        *prometheus.CounterVec
	LookupDuration prometheus.Histogram
	HQFallbacks    prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
}

// New crea y registra las métricas.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "consulta_cnpj_lookups_total",
			Help: "Consultas de CNPJ por resultado",
		}, []string{"outcome"}),
		LookupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "consulta_cnpj_lookup_duration_seconds",
			Help:    "Duración de una consulta completa (incluye matriz e IE)",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}),
		HQFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "consulta_cnpj_headquarters_fallback_total",
			Help: "Consultas de filial en las que la matriz no respondió",
		}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "consulta_cnpj_cache_hits_total",
			Help: "Aciertos de la caché del registro",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "consulta_cnpj_cache_misses_total",
			Help: "Fallos de la caché del registro",
		}),
	}
}

func (m *Metrics) ObserveLookup(outcome string, elapsed time.Duration) {
	m.Lookups.WithLabelValues(outcome).Inc()
	m.LookupDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) HeadquartersFallback() { m.HQFallbacks.Inc() }

func (m *Metrics) CacheHit() { m.CacheHits.Inc() }

func (m *Metrics) CacheMiss() { m.CacheMisses.Inc() }

// Handler expone las métricas en formato texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
