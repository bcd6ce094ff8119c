package cache

import (
	"context"
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestNilCacheIsInert(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	c.PutScan(ctx, "/tmp/project", models.ScanResult{})
	if _, ok := c.GetScan(ctx, "/tmp/project"); ok {
		t.Error("expected a nil cache to always report a scan cache miss")
	}

	c.PutReport(ctx, "/tmp/project", "markdown", []byte("body"))
	if _, ok := c.GetReport(ctx, "/tmp/project", "markdown"); ok {
		t.Error("expected a nil cache to always report a report cache miss")
	}

	c.InvalidateReports(ctx, "/tmp/project")

	if err := c.Close(); err != nil {
		t.Errorf("expected closing a nil cache to be a no-op, got %v", err)
	}
}

func TestConnectWithEmptyURLReturnsNilWithoutError(t *testing.T) {
	c, err := Connect(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected a nil cache when no redis URL is configured")
	}
}

func TestScanAndReportKeysAreNamespacedAndDistinct(t *testing.T) {
	if scanKey("a") == scanKey("b") {
		t.Error("expected distinct projects to produce distinct scan keys")
	}
	if reportKey("a", "markdown") == reportKey("a", "json") {
		t.Error("expected distinct formats to produce distinct report keys")
	}
}
