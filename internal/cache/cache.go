package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

// RecordCache keeps extracted ProductRecords keyed by page URL so repeat
// requests for the same page skip the fetch and extraction. A miss is
// (nil, nil), not an error.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, db int, ttl time.Duration) *RecordCache {
	return &RecordCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		ttl: ttl,
	}
}

func (c *RecordCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RecordCache) Get(ctx context.Context, url string) (*models.ProductRecord, error) {
	data, err := c.client.Get(ctx, key(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}

	var record models.ProductRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode cached record: %w", err)
	}

	return &record, nil
}

func (c *RecordCache) Set(ctx context.Context, url string, record *models.ProductRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := c.client.Set(ctx, key(url), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}

	return nil
}

func (c *RecordCache) Close() error {
	return c.client.Close()
}

func key(url string) string {
	return "product_record:" + url
}
