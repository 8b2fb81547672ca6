package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/salescoach/backend/internal/evaluation"
	"github.com/salescoach/backend/pkg/logger"
)

// Client caches transcript-mode evaluation results keyed by methodology
// plus content hash, so re-pasting the same dialogue returns the stored
// result instead of repeating the oracle calls. Implements
// evaluation.ResultCache.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if ttl <= 0 {
		ttl = time.Hour
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Get(ctx context.Context, key string) (*evaluation.Result, bool, error) {
	data, err := c.client.Get(ctx, "evaluation:"+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached evaluation: %w", err)
	}

	var result evaluation.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached evaluation: %w", err)
	}

	logger.Debug("Evaluation cache hit", zap.String("key", key))
	return &result, true, nil
}

func (c *Client) Set(ctx context.Context, key string, result *evaluation.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	if err := c.client.Set(ctx, "evaluation:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache evaluation: %w", err)
	}

	logger.Debug("Evaluation cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}
