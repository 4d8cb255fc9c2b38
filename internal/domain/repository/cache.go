package repository

import (
	"context"
	"time"
)

// Cache puerto opcional de caché con TTL que los gateways pueden usar internamente.
// El núcleo no depende de su existencia.
type Cache interface {
	// Get devuelve (nil, false, nil) si la clave no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
