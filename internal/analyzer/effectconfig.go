// Package analyzer implements the Core IR static analyzers (spec.md §4.H
// effect/capability checker, §4.I PII flow analyzer). Grounded on the
// teacher's internal/analyzer/analyzer.go walker idiom: a small per-run
// state struct collecting diagnostics, deduplicated and sorted the same way
// (walker.addError/getErrors), re-targeted at Core IR functions instead of
// the teacher's full-language AST walker.
package analyzer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// EffectPatterns is the parsed shape of an effect-config JSON document
// (spec.md §6 "Effect config JSON"): capability-name-keyed prefix lists
// under "io", plus flat prefix lists for "cpu" and "ai".
type EffectPatterns struct {
	IO  map[string][]string `json:"io"`
	CPU []string            `json:"cpu"`
	AI  []string            `json:"ai"`
}

// EffectConfig is the effect-config document: callee-qualified-name prefix
// matching rules used to derive a call's required effect/capability.
type EffectConfig struct {
	Patterns EffectPatterns `json:"patterns"`
}

// capKeyToCanonical maps an "io" sub-key from the config JSON to the
// canonical capability name (spec.md §3 canonical capability order).
var capKeyToCanonical = map[string]string{
	"http":    "HTTP",
	"sql":     "SQL",
	"time":    "TIME",
	"files":   "FILES",
	"secrets": "SECRETS",
	"aimodel": "AI_MODEL",
	"ai":      "AI_MODEL",
}

// DefaultEffectConfig is used when no effect-config file is configured; it
// covers the builtin call targets spec.md's examples exercise (Http.*,
// Sql.*, Time.*, Files.*, Secrets.*, AiModel.*).
func DefaultEffectConfig() *EffectConfig {
	return &EffectConfig{
		Patterns: EffectPatterns{
			IO: map[string][]string{
				"http":    {"Http."},
				"sql":     {"Sql.", "Db."},
				"time":    {"Time.", "Clock."},
				"files":   {"Files.", "File."},
				"secrets": {"Secrets.", "Vault."},
				"aimodel": {"AiModel.", "Ai."},
			},
			CPU: nil,
			AI:  nil,
		},
	}
}

// RequiredCapability reports the capability (and implying effect) a callee
// qualified name requires, derived from prefix matching, or ("", "", false)
// for an ordinary user-defined call.
func (c *EffectConfig) RequiredCapability(calleeName string) (capability, effect string, ok bool) {
	if c == nil {
		c = DefaultEffectConfig()
	}
	for key, prefixes := range c.Patterns.IO {
		for _, p := range prefixes {
			if strings.HasPrefix(calleeName, p) {
				if cap, known := capKeyToCanonical[strings.ToLower(key)]; known {
					return cap, "io", true
				}
			}
		}
	}
	for _, p := range c.Patterns.AI {
		if strings.HasPrefix(calleeName, p) {
			return "AI_MODEL", "io", true
		}
	}
	for _, p := range c.Patterns.CPU {
		if strings.HasPrefix(calleeName, p) {
			return "CPU", "cpu", true
		}
	}
	return "", "", false
}

// EffectConfigCache loads an EffectConfig from disk, keyed by path + mtime
// (spec.md §5: "the sole stage holding a cache ... reloads automatically on
// mtime change or path change"). Grounded on the teacher's
// internal/ext.Cache path/key-based lookup idiom, simplified to a single
// in-memory slot since there is exactly one effect-config document per
// pipeline run.
type EffectConfigCache struct {
	mu      sync.Mutex
	path    string
	modTime time.Time
	cfg     *EffectConfig
}

// NewEffectConfigCache returns an empty cache.
func NewEffectConfigCache() *EffectConfigCache {
	return &EffectConfigCache{}
}

// Load returns the EffectConfig for path, re-reading the file only if path
// changed or its mtime advanced since the last Load.
func (c *EffectConfigCache) Load(path string) (*EffectConfig, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("analyzer: stat effect config: %w", err)
	}

	if c.cfg != nil && c.path == path && !info.ModTime().After(c.modTime) {
		return c.cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("analyzer: read effect config: %w", err)
	}
	var cfg EffectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("analyzer: parse effect config: %w", err)
	}

	c.path = path
	c.modTime = info.ModTime()
	c.cfg = &cfg
	return c.cfg, nil
}

// ForceReload drops the cached config so the next Load re-reads the file
// regardless of mtime (used by tests).
func (c *EffectConfigCache) ForceReload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.path = ""
	c.cfg = nil
}
