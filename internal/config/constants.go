// Package config holds build-time constants and tiny path helpers, in the
// same "named constants + small helper funcs" shape as the teacher's
// internal/config/constants.go.
package config

// Version is the current Aster core version.
var Version = "0.1.0"

const SourceFileExt = ".aster"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".aster", ".cnl"}

// TrimSourceExt removes any recognized source extension from a filename.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source
// extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// DefaultManifestFile is the conventional package-metadata filename the
// manifest validator (§4.J) reads when not given an explicit path.
const DefaultManifestFile = "aster.json"

// CoreIRVersion is the versioned Core IR JSON envelope version (§4.K, §6).
const CoreIRVersion = "1.0"

// Canonical effect capability order (spec.md §3 invariants).
var CanonicalCapabilityOrder = []string{"HTTP", "SQL", "TIME", "FILES", "SECRETS", "AI_MODEL", "CPU"}

// IO capability family implied by the "io" effect (spec.md §3), excluding CPU.
var IOCapabilityFamily = []string{"HTTP", "SQL", "TIME", "FILES", "SECRETS", "AI_MODEL"}
