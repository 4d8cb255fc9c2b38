package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/consulta-cnpj/internal/domain/repository"
)

var _ repository.Cache = (*MemoryCache)(nil)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache caché en proceso con TTL. Las entradas expiradas se eliminan al leerlas.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryCache construye una caché vacía.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem), now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(it.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return it.value, true, nil
}

// Put guarda value. ttl <= 0 no guarda nada.
func (c *MemoryCache) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryItem{value: value, expiresAt: c.now().Add(ttl)}
	return nil
}
