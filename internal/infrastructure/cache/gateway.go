// Package cache implementa la caché opcional de consultas al registro.
// El núcleo no sabe que existe: CachedGateway decora cualquier RegistryGateway.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/consulta-cnpj/internal/domain/entity"
	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
	"github.com/jhoicas/consulta-cnpj/pkg/logger"
)

var _ repository.RegistryGateway = (*CachedGateway)(nil)

// Observer recibe aciertos y fallos de caché. Opcional.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// CachedGateway consulta la caché antes del gateway real. Solo se guardan respuestas
// exitosas; los errores nunca se cachean. Un fallo de la caché no falla la consulta.
type CachedGateway struct {
	next     repository.RegistryGateway
	cache    repository.Cache
	ttl      time.Duration
	observer Observer
	log      *logger.Logger
}

// NewCachedGateway construye el decorador. observer puede ser nil.
func NewCachedGateway(next repository.RegistryGateway, c repository.Cache, ttl time.Duration, observer Observer, log *logger.Logger) *CachedGateway {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedGateway{next: next, cache: c, ttl: ttl, observer: observer, log: log}
}

func (g *CachedGateway) Fetch(ctx context.Context, cnpj string) (*entity.RegistryRecord, error) {
	key := "registry:" + cnpj

	raw, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Warn().Err(err).Str("cnpj", cnpj).Msg("caché: lectura fallida")
	}
	if ok {
		var rec entity.RegistryRecord
		if err := json.Unmarshal(raw, &rec); err == nil {
			g.hit()
			return &rec, nil
		}
		g.log.Warn().Str("cnpj", cnpj).Msg("caché: entrada corrupta, se ignora")
	}
	g.miss()

	rec, err := g.next.Fetch(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(rec); err == nil {
		if err := g.cache.Put(ctx, key, b, g.ttl); err != nil {
			g.log.Warn().Err(err).Str("cnpj", cnpj).Msg("caché: escritura fallida")
		}
	}
	return rec, nil
}

func (g *CachedGateway) hit() {
	if g.observer != nil {
		g.observer.CacheHit()
	}
}

func (g *CachedGateway) miss() {
	if g.observer != nil {
		g.observer.CacheMiss()
	}
}
