// Package collector walks a project tree into a ScanContext, applying the
// engine's fixed exclusion, extension, and size policies.
package collector

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/models"
)

var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	".next":        true,
	"coverage":     true,
	"__pycache__":  true,
	"vendor":       true,
	".cache":       true,
	".output":      true,
}

var includedExt = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".json": true, ".md": true, ".yaml": true, ".yml": true,
	".py": true, ".html": true, ".css": true, ".toml": true, ".go": true,
}

const (
	maxFiles   = 500
	maxFileSize = 1 << 20 // 1 MiB
)

// Collector walks a project directory into a ScanContext.
type Collector struct {
	log logger.Interface
}

func New(log logger.Interface) *Collector {
	return &Collector{log: log}
}

// Collect walks projectPath depth-first, returning a ScanContext whose
// Files preserve traversal order. Read errors are skipped silently; the
// walk continues. At most maxFiles files are included.
func (c *Collector) Collect(projectPath string) (*models.ScanContext, error) {
	ctx := &models.ScanContext{ProjectPath: projectPath}

	err := filepath.WalkDir(projectPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if c.log != nil {
				c.log.Debug("collector: walk error, skipping", zap.String("path", path))
			}
			return nil
		}
		if len(ctx.Files) >= maxFiles {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] && path != projectPath {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !includedExt[ext] {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(projectPath, path)
		if err != nil {
			rel = path
		}

		ctx.Files = append(ctx.Files, models.FileSnapshot{
			AbsPath: path,
			Path:    filepath.ToSlash(rel),
			Ext:     ext,
			Content: string(content),
		})
		return nil
	})

	return ctx, err
}
