// Package manifest validates package-metadata JSON documents (spec.md
// §4.J, Component J). Grounded on internal/config/constants.go's
// "named constants + small helper funcs" idiom for the fixed capability
// set, and the stdlib encoding/json + regexp combination the teacher's
// own internal/ext/config.go uses for its funxy.yaml/json fallback
// parsing (see DESIGN.md: no pack dependency covers bespoke
// manifest-schema validation better than stdlib here).
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/aster-lang/aster-core/internal/diagnostics"
	"github.com/aster-lang/aster-core/internal/span"
)

var (
	namePattern    = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z][a-z0-9_]*)*$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	// constraintPattern matches "^N.N.N", "~N.N.N" or exact "N.N.N".
	constraintPattern = regexp.MustCompile(`^[~^]?\d+\.\d+\.\d+$`)
	effectNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

// knownCapabilities is the fixed capability set manifests may allow/deny
// (spec.md §4.J).
var knownCapabilities = map[string]bool{
	"Http": true, "Sql": true, "Time": true, "Files": true,
	"Secrets": true, "AiModel": true, "Cpu": true,
}

var knownFields = map[string]bool{
	"name": true, "version": true, "dependencies": true, "devDependencies": true,
	"effects": true, "capabilities": true,
}

// Manifest is the validated, parsed package metadata document.
type Manifest struct {
	Name            string
	Version         string
	Dependencies    map[string]string
	DevDependencies map[string]string
	Effects         []string
	Allow           []string
	Deny            []string
}

type rawManifest struct {
	Name            *string           `json:"name"`
	Version         *string           `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Effects         []string          `json:"effects"`
	Capabilities    *rawCapabilities  `json:"capabilities"`
}

type rawCapabilities struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

// ParseManifest reads and validates the manifest JSON document at path
// (spec.md §6 "parseManifest(path) -> Manifest | diagnostics").
func ParseManifest(path string) (*Manifest, []diagnostics.Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.Error, diagnostics.CodeM002FileNotFound,
				fmt.Sprintf("manifest file not found: %s", err), span.Span{}, "aster-manifest"),
		}
	}
	return Validate(data)
}

// Validate parses and validates a manifest JSON document already in memory.
func Validate(data []byte) (*Manifest, []diagnostics.Diagnostic) {
	var unknownCheck map[string]json.RawMessage
	if err := json.Unmarshal(data, &unknownCheck); err != nil {
		return nil, []diagnostics.Diagnostic{
			diagnostics.New(diagnostics.Error, diagnostics.CodeM001JSONParse,
				fmt.Sprintf("invalid manifest JSON: %s", err), span.Span{}, "aster-manifest"),
		}
	}

	var diags []diagnostics.Diagnostic
	for field := range unknownCheck {
		if !knownFields[field] {
			diags = append(diags, diagnostics.New(diagnostics.Warning, diagnostics.CodeM007UnknownField,
				fmt.Sprintf("unknown manifest field %q", field), span.Span{}, "aster-manifest").
				WithData("field", field))
		}
	}

	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM001JSONParse,
			fmt.Sprintf("invalid manifest JSON: %s", err), span.Span{}, "aster-manifest"))
		return nil, diags
	}

	m := &Manifest{Dependencies: raw.Dependencies, DevDependencies: raw.DevDependencies, Effects: raw.Effects}

	if raw.Name != nil {
		if !namePattern.MatchString(*raw.Name) {
			diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM003BadPackageName,
				fmt.Sprintf("invalid package name %q", *raw.Name), span.Span{}, "aster-manifest"))
		} else {
			m.Name = *raw.Name
		}
	}

	if raw.Version != nil {
		if !versionPattern.MatchString(*raw.Version) {
			diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM004BadVersion,
				fmt.Sprintf("invalid version %q, want strict N.N.N", *raw.Version), span.Span{}, "aster-manifest"))
		} else {
			m.Version = *raw.Version
		}
	}

	for name, constraint := range raw.Dependencies {
		if !constraintPattern.MatchString(constraint) {
			diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM005BadConstraint,
				fmt.Sprintf("invalid dependency constraint %q for %q", constraint, name), span.Span{}, "aster-manifest").
				WithData("dependency", name))
		}
	}
	for name, constraint := range raw.DevDependencies {
		if !constraintPattern.MatchString(constraint) {
			diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM005BadConstraint,
				fmt.Sprintf("invalid devDependency constraint %q for %q", constraint, name), span.Span{}, "aster-manifest").
				WithData("dependency", name))
		}
	}

	for _, eff := range raw.Effects {
		if !effectNamePattern.MatchString(eff) {
			diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM006BadEffectName,
				fmt.Sprintf("effect name %q is not PascalCase", eff), span.Span{}, "aster-manifest").
				WithData("effect", eff))
		}
	}

	if raw.Capabilities != nil {
		m.Allow = raw.Capabilities.Allow
		m.Deny = raw.Capabilities.Deny
		for _, cap := range append(append([]string{}, raw.Capabilities.Allow...), raw.Capabilities.Deny...) {
			if !knownCapabilities[cap] {
				diags = append(diags, diagnostics.New(diagnostics.Error, diagnostics.CodeM008BadCapability,
					fmt.Sprintf("unknown capability %q", cap), span.Span{}, "aster-manifest").
					WithData("capability", cap))
			}
		}
	}

	if diagnostics.HasErrors(diags) {
		return nil, diags
	}
	return m, diags
}
