package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TokenBlacklist defines the interface for token revocation
type TokenBlacklist interface {
	// AddToBlacklist adds a token's JTI to the blacklist until its expiration
	AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error
	// IsBlacklisted checks whether a token's JTI has been revoked
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// AddClientTokensToBlacklist invalidates all tokens issued to a client before now
	AddClientTokensToBlacklist(ctx context.Context, clientID string, ttl time.Duration) error
	// IsClientTokenInvalidated checks whether a token was issued before the client's invalidation timestamp
	IsClientTokenInvalidated(ctx context.Context, clientID string, issuedAt time.Time) (bool, error)
}

const (
	blacklistKeyPrefix  = "token:blacklist:"
	clientInvalidPrefix = "token:client:invalidated:"
)

// RedisTokenBlacklist implements TokenBlacklist backed by Redis
type RedisTokenBlacklist struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(client *redis.Client, logger *zap.Logger) *RedisTokenBlacklist {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTokenBlacklist{
		client: client,
		logger: logger,
	}
}

func (b *RedisTokenBlacklist) AddToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired, nothing to do
		return nil
	}

	key := blacklistKeyPrefix + jti
	if err := b.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	b.logger.Debug("token blacklisted",
		zap.String("jti", jti),
		zap.Duration("ttl", ttl))

	return nil
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := blacklistKeyPrefix + jti
	result, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return result > 0, nil
}

func (b *RedisTokenBlacklist) AddClientTokensToBlacklist(ctx context.Context, clientID string, ttl time.Duration) error {
	key := clientInvalidPrefix + clientID
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := b.client.Set(ctx, key, now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate client tokens: %w", err)
	}

	b.logger.Info("all client tokens invalidated",
		zap.String("client_id", clientID))

	return nil
}

func (b *RedisTokenBlacklist) IsClientTokenInvalidated(ctx context.Context, clientID string, issuedAt time.Time) (bool, error) {
	key := clientInvalidPrefix + clientID
	val, err := b.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to check client invalidation: %w", err)
	}

	invalidatedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, nil
	}

	return issuedAt.Unix() <= invalidatedAt, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist implements TokenBlacklist in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryTokenBlacklist struct {
	mu          sync.RWMutex
	tokens      map[string]time.Time
	invalidated map[string]time.Time
}

// NewInMemoryTokenBlacklist creates an in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens:      make(map[string]time.Time),
		invalidated: make(map[string]time.Time),
	}
}

func (b *InMemoryTokenBlacklist) AddToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = time.Now().Add(ttl)
	return nil
}

func (b *InMemoryTokenBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	b.mu.RLock()
	expiresAt, ok := b.tokens[jti]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		b.mu.Lock()
		delete(b.tokens, jti)
		b.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (b *InMemoryTokenBlacklist) AddClientTokensToBlacklist(_ context.Context, clientID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidated[clientID] = time.Now()
	return nil
}

func (b *InMemoryTokenBlacklist) IsClientTokenInvalidated(_ context.Context, clientID string, issuedAt time.Time) (bool, error) {
	b.mu.RLock()
	invalidatedAt, ok := b.invalidated[clientID]
	b.mu.RUnlock()

	if !ok {
		return false, nil
	}
	return issuedAt.Unix() <= invalidatedAt.Unix(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
