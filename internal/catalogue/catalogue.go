// Package catalogue loads the regulation catalogue the rest of the engine
// scores and fixes against. Catalogue sections are plain JSON files rather
// than a database, which keeps the loader dependency-free: the engine can
// ship, or an operator can override, a catalogue pack without touching the
// binary.
package catalogue

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/complior/engine/data"
	"github.com/complior/engine/internal/models"
)

var bundled = data.Files

var (
	mu     sync.RWMutex
	loaded *models.Catalogue
)

// Load reads the catalogue from CATALOGUE_PATH if set, else from the
// binary's embedded copy, validates it structurally, and caches it for the
// process lifetime. A validation failure is a fatal configuration error per
// the loader's contract — callers should treat it as such.
func Load() (*models.Catalogue, error) {
	mu.Lock()
	defer mu.Unlock()
	if loaded != nil {
		return loaded, nil
	}

	var src fs.FS = bundled
	if override := os.Getenv("CATALOGUE_PATH"); override != "" {
		src = os.DirFS(override)
	}

	cat, err := loadFrom(src)
	if err != nil {
		return nil, fmt.Errorf("catalogue: %w", err)
	}
	if err := validate(cat); err != nil {
		return nil, fmt.Errorf("catalogue: invalid: %w", err)
	}
	loaded = cat
	return loaded, nil
}

// Reset clears the process-lifetime cache. Used by tests that need a fresh
// Load() call, and by CATALOGUE_PATH hot-swaps during development.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = nil
}

func loadFrom(src fs.FS) (*models.Catalogue, error) {
	cat := &models.Catalogue{}

	if err := readJSON(src, "obligations.json", &cat.Obligations); err != nil {
		return nil, err
	}
	if err := readJSON(src, "categories.json", &cat.Categories); err != nil {
		return nil, err
	}
	var scoring models.ScoringData
	if err := readJSON(src, "scoring.json", &scoring); err != nil {
		return nil, err
	}
	scoring.Categories = cat.Categories
	cat.Scoring = scoring
	if err := readJSON(src, "check_category_map.json", &cat.CheckIDCategoryMap); err != nil {
		return nil, err
	}
	if err := readJSON(src, "banned_packages.json", &cat.BannedPackages); err != nil {
		return nil, err
	}
	if err := readJSON(src, "ai_sdk_registry.json", &cat.AISDKRegistry); err != nil {
		return nil, err
	}
	if err := readJSON(src, "pattern_rules.json", &cat.PatternRules); err != nil {
		return nil, err
	}
	if err := readJSON(src, "fix_templates.json", &cat.FixTemplates); err != nil {
		return nil, err
	}

	validators, err := readValidators(src)
	if err != nil {
		return nil, err
	}
	cat.DocumentValidators = validators

	return cat, nil
}

func readJSON(src fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(src, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func readValidators(src fs.FS) ([]models.DocumentValidator, error) {
	entries, err := fs.ReadDir(src, "validators")
	if err != nil {
		return nil, fmt.Errorf("reading validators dir: %w", err)
	}
	var out []models.DocumentValidator
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		var v models.DocumentValidator
		if err := readJSON(src, filepath.Join("validators", e.Name()), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Template loads the raw content of a fix template by filename (the
// "templateFile" value in a FixTemplateEntry), honoring CATALOGUE_PATH the
// same way Load does.
func Template(name string) (string, error) {
	var src fs.FS = bundled
	if override := os.Getenv("CATALOGUE_PATH"); override != "" {
		src = os.DirFS(override)
	}
	data, err := fs.ReadFile(src, filepath.Join("templates", name))
	if err != nil {
		return "", fmt.Errorf("catalogue: template %s: %w", name, err)
	}
	return string(data), nil
}

// validate runs the minimal structural checks the loader's contract
// requires: obligations and categories are non-empty, obligation ids are
// present and unique, every document validator names an obligation and at
// least one filename pattern, and every pattern rule has a pattern and a
// valid polarity.
func validate(cat *models.Catalogue) error {
	if len(cat.Obligations) == 0 {
		return fmt.Errorf("no obligations loaded")
	}
	if len(cat.Categories) == 0 {
		return fmt.Errorf("no categories loaded")
	}
	seen := map[string]bool{}
	for _, o := range cat.Obligations {
		if o.ID == "" {
			return fmt.Errorf("obligation missing id")
		}
		if seen[o.ID] {
			return fmt.Errorf("duplicate obligation id %q", o.ID)
		}
		seen[o.ID] = true
	}
	for _, dv := range cat.DocumentValidators {
		if dv.ObligationID == "" {
			return fmt.Errorf("document validator missing obligationId")
		}
		if len(dv.FilenamePatterns) == 0 {
			return fmt.Errorf("document validator %s has no filename patterns", dv.ObligationID)
		}
	}
	for _, r := range cat.PatternRules {
		if r.Pattern == "" {
			return fmt.Errorf("pattern rule %s has empty pattern", r.Label)
		}
		if r.Polarity != "positive" && r.Polarity != "negative" {
			return fmt.Errorf("pattern rule %s has invalid polarity %q", r.Label, r.Polarity)
		}
	}
	return nil
}
