// Package cache holds a Redis-backed cache of recent ScanResults and
// generated reports, so a `report` call for an unchanged scan doesn't
// re-render. Like internal/store, a nil *Cache is a valid, inert value:
// absence of Redis degrades to "always recompute," never an error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/models"
)

const defaultTTL = 1 * time.Hour

// Cache wraps a Redis client. A nil *Cache is valid and every method is a
// no-op / cache-miss.
type Cache struct {
	client *redis.Client
	log    logger.Interface
}

// Connect builds a client and verifies it with a PING. redisURL empty or
// unreachable both yield (nil, nil).
func Connect(ctx context.Context, redisURL string, log logger.Interface) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid redis URL, falling back to no cache")
		return nil, nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis ping failed, falling back to no cache")
		client.Close()
		return nil, nil
	}
	return &Cache{client: client, log: log.WithComponent("cache")}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func scanKey(projectPath string) string   { return "complior:scan:" + projectPath }
func reportKey(projectPath, format string) string { return "complior:report:" + format + ":" + projectPath }

// PutScan stores the most recent ScanResult for a project. No-op on nil.
func (c *Cache) PutScan(ctx context.Context, projectPath string, result models.ScanResult) {
	if c == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, scanKey(projectPath), data, defaultTTL).Err(); err != nil {
		c.log.Warn("failed to cache scan result")
	}
}

// GetScan returns the cached ScanResult, if any, and whether it was found.
func (c *Cache) GetScan(ctx context.Context, projectPath string) (models.ScanResult, bool) {
	var result models.ScanResult
	if c == nil {
		return result, false
	}
	data, err := c.client.Get(ctx, scanKey(projectPath)).Bytes()
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

// PutReport caches a rendered report body keyed by project+format for
// defaultTTL. The key carries no scan identity; a cached body is dropped by
// InvalidateReports or when its TTL passes.
func (c *Cache) PutReport(ctx context.Context, projectPath, format string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, reportKey(projectPath, format), body, defaultTTL).Err(); err != nil {
		c.log.Warn("failed to cache report")
	}
}

// GetReport returns a cached report body, if any.
func (c *Cache) GetReport(ctx context.Context, projectPath, format string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, reportKey(projectPath, format)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// InvalidateReports drops cached reports for a project, called after every
// scan, fix and undo so stale reports are never served.
func (c *Cache) InvalidateReports(ctx context.Context, projectPath string) {
	if c == nil {
		return
	}
	for _, format := range []string{"markdown", "pdf", "json"} {
		c.client.Del(ctx, reportKey(projectPath, format))
	}
}
