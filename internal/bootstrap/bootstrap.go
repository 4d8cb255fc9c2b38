// Package bootstrap arma el grafo de dependencias compartido por el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/consulta-cnpj/internal/application/lookup"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/brasilapi"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/cache"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/cnpja"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/consulta-cnpj/internal/infrastructure/pdf"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/postgres"
	"github.com/jhoicas/consulta-cnpj/pkg/config"
	"github.com/jhoicas/consulta-cnpj/pkg/logger"
)

// Options activa o desactiva piezas opcionales.
type Options struct {
	// SkipHistory no abre PostgreSQL aunque esté configurado.
	SkipHistory bool
	// SkipRegistrations no consulta inscripciones estaduales.
	SkipRegistrations bool
}

// App casos de uso listos para usar más la función de cierre de recursos.
type App struct {
	Lookup  *lookup.LookupUseCase
	PDF     *lookup.PDFUseCase
	History *lookup.HistoryUseCase // nil sin base de datos
	Metrics *metrics.Metrics

	closers []func()
}

// Close libera conexiones (pool de PostgreSQL, cliente Redis).
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build conecta infraestructura y casos de uso según cfg.
// PostgreSQL y Redis son opcionales: sin ellos no hay histórico y la caché es en memoria.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	app := &App{Metrics: metrics.New()}

	var gateway repository.RegistryGateway = brasilapi.NewClient(cfg.Registry.BrasilAPIURL, cfg.Registry.Timeout, log)

	if cfg.Cache.TTL > 0 {
		store, err := newCache(ctx, cfg, log, app)
		if err != nil {
			app.Close()
			return nil, err
		}
		gateway = cache.NewCachedGateway(gateway, store, cfg.Cache.TTL, app.Metrics, log)
	}

	var registrations repository.StateRegistrationGateway
	if !opts.SkipRegistrations && cfg.Registry.CNPJaURL != "" {
		registrations = cnpja.NewClient(cfg.Registry.CNPJaURL, cfg.Registry.Timeout, log)
	}

	var logs repository.LookupLogRepository
	if !opts.SkipHistory && cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			app.Close()
			return nil, fmt.Errorf("esquema de histórico: %w", err)
		}
		repo := postgres.NewLookupLogRepository(pool)
		logs = repo
		app.History = lookup.NewHistoryUseCase(repo)
	}

	app.Lookup = lookup.NewLookupUseCase(gateway, registrations, logs, app.Metrics, log)
	app.PDF = lookup.NewPDFUseCase(app.Lookup, infrapdf.NewMarotoPDFGenerator())
	return app, nil
}

func newCache(ctx context.Context, cfg *config.Config, log *logger.Logger, app *App) (repository.Cache, error) {
	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("conexión a Redis: %w", err)
	}
	if client == nil {
		log.Info().Dur("ttl", cfg.Cache.TTL).Msg("caché del registro en memoria")
		return cache.NewMemoryCache(), nil
	}
	app.closers = append(app.closers, func() { _ = client.Close() })
	log.Info().Dur("ttl", cfg.Cache.TTL).Msg("caché del registro en Redis")
	return cache.NewRedisCache(client), nil
}
