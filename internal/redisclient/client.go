package redisclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"support-service/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	productSampleKey = "chat:product-sample"
	denylistPrefix   = "auth:denylist:"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies the connection, used by the readiness probe
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// GetProductSample retrieves the cached catalog sample used for chat
// context. Returns nil, nil on a cache miss.
func (c *Client) GetProductSample(ctx context.Context) ([]models.Product, error) {
	data, err := c.rdb.Get(ctx, productSampleKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode cached product sample: %w", err)
	}
	return products, nil
}

// SetProductSample caches the catalog sample with a TTL
func (c *Client) SetProductSample(ctx context.Context, products []models.Product, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to encode product sample: %w", err)
	}
	return c.rdb.Set(ctx, productSampleKey, data, ttl).Err()
}

// InvalidateProductSample drops the cached catalog sample, called after
// admin catalog mutations.
func (c *Client) InvalidateProductSample(ctx context.Context) error {
	return c.rdb.Del(ctx, productSampleKey).Err()
}

// DenyToken records a logged-out bearer token until its natural expiry
func (c *Client) DenyToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, denylistPrefix+tokenKey(token), "1", ttl).Err()
}

// IsTokenDenied reports whether a bearer token has been logged out
func (c *Client) IsTokenDenied(ctx context.Context, token string) (bool, error) {
	n, err := c.rdb.Exists(ctx, denylistPrefix+tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// tokenKey hashes the token so raw credentials never land in Redis keys
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
