package store

import (
	"context"
	"testing"

	"github.com/complior/engine/internal/models"
)

func TestNilStoreIsInert(t *testing.T) {
	var s *Store
	ctx := context.Background()

	s.RecordScan(ctx, "/tmp/project", models.ScanResult{})
	s.RecordFix(ctx, "/tmp/project", models.HistoryEntry{})

	scans, err := s.RecentScans(ctx, "/tmp/project", 10)
	if err != nil {
		t.Fatalf("expected a nil store's RecentScans to return no error, got %v", err)
	}
	if scans != nil {
		t.Errorf("expected a nil store's RecentScans to return nil, got %v", scans)
	}

	if err := s.Close(); err != nil {
		t.Errorf("expected closing a nil store to be a no-op, got %v", err)
	}
}

func TestConnectWithEmptyURLReturnsNilWithoutError(t *testing.T) {
	s, err := Connect(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != nil {
		t.Error("expected a nil store when no database URL is configured")
	}
}
