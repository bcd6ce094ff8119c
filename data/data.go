// Package data embeds the bundled regulation catalogue so the engine ships
// as a single binary. internal/catalogue reads from this FS unless
// CATALOGUE_PATH points at an on-disk override.
package data

import "embed"

//go:embed obligations.json categories.json scoring.json check_category_map.json banned_packages.json ai_sdk_registry.json pattern_rules.json fix_templates.json validators templates
var Files embed.FS
