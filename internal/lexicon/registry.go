package lexicon

import (
	"fmt"
	"sync"
)

// Registry maps locale ids to Lexicons, plus a designated default. It is a
// process-wide, effectively-read-only singleton once Global() has populated
// it (spec.md §5);
// tests reset it explicitly via Reset().
type Registry struct {
	lexicons map[string]*Lexicon
	defaultID string
}

var (
	global     = newRegistry()
	globalOnce sync.Once
)

func newRegistry() *Registry {
	return &Registry{lexicons: make(map[string]*Lexicon)}
}

// Register adds (or replaces) a lexicon under its own ID.
func (r *Registry) Register(l *Lexicon) {
	r.lexicons[l.ID] = l
	if r.defaultID == "" {
		r.defaultID = l.ID
	}
	invalidateMultiWordCache(l.ID)
}

// Get returns the lexicon registered under id, or nil if absent.
func (r *Registry) Get(id string) *Lexicon {
	return r.lexicons[id]
}

// SetDefault designates the default lexicon. Panics if id is unregistered,
// matching the teacher's fail-fast style for programmer errors.
func (r *Registry) SetDefault(id string) {
	if _, ok := r.lexicons[id]; !ok {
		panic(fmt.Sprintf("lexicon: cannot set unknown default %q", id))
	}
	r.defaultID = id
}

// GetDefault returns the default lexicon. Panics if the registry is empty.
func (r *Registry) GetDefault() *Lexicon {
	if r.defaultID == "" {
		panic("lexicon: registry has no default lexicon")
	}
	return r.lexicons[r.defaultID]
}

// Reset clears the registry. Test-only escape hatch (spec.md §4.A). When
// called on the process-wide registry it also rearms Global()'s init guard
// so a subsequent Global() call repopulates the built-in locales.
func (r *Registry) Reset() {
	r.lexicons = make(map[string]*Lexicon)
	r.defaultID = ""
	if r == global {
		globalOnce = sync.Once{}
	}
}

// Global returns the process-wide registry, initializing it with the
// built-in locales on first use. Initialization runs exactly once even
// under concurrent first callers (spec.md §5: "initialized once
// (idempotently) before first use"); Reset() is a test-only escape hatch
// that rearms the once-guard.
func Global() *Registry {
	globalOnce.Do(func() {
		global.Register(English())
		global.Register(ChineseSimplified())
		global.SetDefault("en")
	})
	return global
}
