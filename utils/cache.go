package utils

import (
	"context"
	"fmt"
	"time"

	"medlink/config"

	json "github.com/goccy/go-json"
	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client shared by every instance.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

const (
	authAccountPrefix = "auth:account:"
	revokedPrefix     = "auth:revoked:"
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis db %d: %w", db, err)
	}
	return client, nil
}

// InitCache connects the generic and the authorization Redis clients.
func InitCache() error {
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		return err
	}
	return nil
}

// CloseCache closes whichever Redis clients were opened.
func CloseCache() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}

// AuthCache remembers which token subjects were recently confirmed to exist
// and which tokens were revoked by logout.
type AuthCache struct {
	client *redis.Client
}

func NewAuthCache(client *redis.Client) *AuthCache {
	return &AuthCache{client: client}
}

func accountKey(claims *TokenClaims) string {
	return authAccountPrefix + string(claims.Role) + ":" + claims.Subject
}

// GetAccount returns the cached claims for a subject, or nil on a miss.
func (a *AuthCache) GetAccount(ctx context.Context, claims *TokenClaims) (*TokenClaims, error) {
	data, err := a.client.Get(ctx, accountKey(claims)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cached TokenClaims
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (a *AuthCache) SetAccount(ctx context.Context, claims *TokenClaims, ttl time.Duration) error {
	data, err := json.Marshal(claims)
	if err != nil {
		return err
	}
	return a.client.Set(ctx, accountKey(claims), data, ttl).Err()
}

// Revoke blocks the token until it would have expired anyway.
func (a *AuthCache) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return a.client.Set(ctx, revokedPrefix+HashToken(token), 1, ttl).Err()
}

func (a *AuthCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := a.client.Exists(ctx, revokedPrefix+HashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// JSONCache keeps JSON documents under a key prefix in the generic cache.
type JSONCache struct {
	client *redis.Client
	prefix string
}

func NewJSONCache(client *redis.Client, prefix string) *JSONCache {
	return &JSONCache{client: client, prefix: prefix}
}

// Get decodes the cached value into dst. It reports false on a miss.
func (c *JSONCache) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *JSONCache) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}
