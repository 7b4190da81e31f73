// Package cache implementa la caché de principals: un adaptador en memoria
// para despliegues de un solo nodo y uno Redis para despliegues con varias
// réplicas.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/ServiOrden-api/internal/application/auth"
)

var _ auth.PrincipalCache = (*Memory)(nil)

type memoryEntry struct {
	snap      auth.PrincipalSnapshot
	expiresAt time.Time
}

// Memory caché de principals en memoria con TTL y barrido periódico.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

// NewMemory crea la caché y arranca el barrido de entradas vencidas.
func NewMemory(sweepInterval time.Duration) *Memory {
	m := &Memory{
		entries: make(map[string]memoryEntry),
		done:    make(chan struct{}),
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	go m.sweep(sweepInterval)
	return m
}

// Get devuelve el snapshot cacheado, o (nil, nil) en miss o entrada vencida.
func (m *Memory) Get(ctx context.Context, userID string) (*auth.PrincipalSnapshot, error) {
	m.mu.RLock()
	entry, ok := m.entries[userID]
	m.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	snap := entry.snap
	return &snap, nil
}

// Put guarda el snapshot con el TTL dado.
func (m *Memory) Put(ctx context.Context, userID string, snap auth.PrincipalSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[userID] = memoryEntry{snap: snap, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Invalidate expulsa la entrada del usuario.
func (m *Memory) Invalidate(ctx context.Context, userID string) error {
	m.mu.Lock()
	delete(m.entries, userID)
	m.mu.Unlock()
	return nil
}

// Stop detiene el barrido. Idempotente.
func (m *Memory) Stop() {
	m.once.Do(func() { close(m.done) })
}

func (m *Memory) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for id, entry := range m.entries {
				if now.After(entry.expiresAt) {
					delete(m.entries, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
