package slotlock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "slotlock"

var (
	// ErrLockHeld возвращается, когда блокировку уже держит другой запрос
	ErrLockHeld = errors.New("slotlock: lock is held by another request")

	// ErrRedis возвращается при ошибках обращения к Redis
	ErrRedis = errors.New("slotlock: redis error")
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// ReleaseFunc снимает захваченную блокировку
type ReleaseFunc func(ctx context.Context) error

// Key собирает ключ блокировки из частей: slotlock:<part1>:<part2>...
func Key(parts ...string) string {
	return keyPrefix + ":" + strings.Join(parts, ":")
}

// Locker advisory-блокировка на Redis (SET NX PX + compare-and-delete)
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает Locker. ttl ограничивает время жизни блокировки, если владелец упал.
func New(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Acquire пытается захватить блокировку без ожидания
func (l *Locker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: SETNX %s: %v", ErrRedis, key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("%w: release %s: %v", ErrRedis, key, err)
		}
		return nil
	}, nil
}

// Noop блокировка-заглушка, когда Redis отключён
type Noop struct{}

// Acquire всегда успешен
func (Noop) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
