package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/ServiOrden-api/internal/application/auth"
	"github.com/jhoicas/ServiOrden-api/pkg/config"
)

var _ auth.PrincipalCache = (*Redis)(nil)

// Redis caché de principals sobre Redis, para despliegues con varias réplicas
// (la invalidación al borrar un usuario llega a todas).
type Redis struct {
	client *redis.Client
}

// NewRedis conecta al servidor y verifica con un ping.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func principalKey(userID string) string {
	return "principal:" + userID
}

// Get devuelve el snapshot cacheado, o (nil, nil) en miss.
func (r *Redis) Get(ctx context.Context, userID string) (*auth.PrincipalSnapshot, error) {
	raw, err := r.client.Get(ctx, principalKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get principal: %w", err)
	}
	var snap auth.PrincipalSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal principal: %w", err)
	}
	return &snap, nil
}

// Put guarda el snapshot con el TTL dado.
func (r *Redis) Put(ctx context.Context, userID string, snap auth.PrincipalSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}
	if err := r.client.Set(ctx, principalKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("set principal: %w", err)
	}
	return nil
}

// Invalidate expulsa la entrada del usuario.
func (r *Redis) Invalidate(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, principalKey(userID)).Err(); err != nil {
		return fmt.Errorf("del principal: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (r *Redis) Close() error {
	return r.client.Close()
}
