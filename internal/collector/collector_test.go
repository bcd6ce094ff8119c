package collector

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("failed to create directory for fixture: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture file: %v", err)
	}
}

func TestCollectIncludesOnlyAllowedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# hi")
	writeFile(t, dir, "image.png", "binary")

	c := New(nil)
	ctx, err := c.Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ctx.Files) != 1 || ctx.Files[0].Path != "README.md" {
		t.Fatalf("expected only README.md to be collected, got %+v", ctx.Files)
	}
}

func TestCollectSkipsExcludedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/pkg/index.js", "console.log(1)")
	writeFile(t, dir, "src/main.go", "package main")

	c := New(nil)
	ctx, err := c.Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range ctx.Files {
		if strings.Contains(f.Path, "node_modules") {
			t.Errorf("expected node_modules to be excluded, found %s", f.Path)
		}
	}
	if len(ctx.Files) != 1 {
		t.Fatalf("expected exactly one collected file, got %+v", ctx.Files)
	}
}

func TestCollectSkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("a", maxFileSize+1)
	writeFile(t, dir, "huge.md", big)
	writeFile(t, dir, "small.md", "fine")

	c := New(nil)
	ctx, err := c.Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ctx.Files) != 1 || ctx.Files[0].Path != "small.md" {
		t.Fatalf("expected only the small file to be collected, got %+v", ctx.Files)
	}
}

func TestCollectCapsAtMaxFiles(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < maxFiles+10; i++ {
		writeFile(t, dir, filepath.Join("docs", strconv.Itoa(i)+".md"), "content")
	}

	c := New(nil)
	ctx, err := c.Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ctx.Files) > maxFiles {
		t.Errorf("expected at most %d files, got %d", maxFiles, len(ctx.Files))
	}
}
