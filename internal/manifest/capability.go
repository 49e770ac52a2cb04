package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// CapabilityManifest is the allow/deny policy consumed by
// typecheckModuleWithCapabilities (spec.md §6 "Capability manifest JSON":
// `{ "allow": ["module.func", "module.*", …], "deny": [...] }`). This is a
// distinct document from the package manifest's own `capabilities`
// allow/deny-of-capability-name field (§4.J) — here entries are qualified
// function references, not capability names.
type CapabilityManifest struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// LoadCapabilityManifest reads a capability manifest document from path.
func LoadCapabilityManifest(path string) (*CapabilityManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read capability manifest: %w", err)
	}
	var m CapabilityManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse capability manifest: %w", err)
	}
	return &m, nil
}
