package session

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// TokenStore persists the session token across process restarts. It is the
// localStorage analog: a single fixed key, read at startup, removed on logout.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

const tokenKey = "stockview:session:token"

type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token store.
func NewRedisTokenStore(addr, password string, db int) TokenStore {
	// Accept redis://host:port and rediss://host:port forms as well.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisTokenStore{client: client}
}

func (r *redisTokenStore) Save(ctx context.Context, token string) error {
	// The token lives for the browser-session lifetime, so no TTL.
	return r.client.Set(ctx, tokenKey, token, 0).Err()
}

func (r *redisTokenStore) Load(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // no stored session
		}
		return "", err
	}
	return val, nil
}

func (r *redisTokenStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, tokenKey).Err()
}

type memoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates an in-process token store, used in tests and
// when no Redis address is configured.
func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{}
}

func (m *memoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryTokenStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
