package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCapabilityManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capabilities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"allow": ["http.get", "json.*"], "deny": ["secrets.read"]}`), 0o644))

	m, err := LoadCapabilityManifest(path)
	require.NoError(t, err)
	require.Equal(t, []string{"http.get", "json.*"}, m.Allow)
	require.Equal(t, []string{"secrets.read"}, m.Deny)
}

func TestLoadCapabilityManifest_MissingFile(t *testing.T) {
	_, err := LoadCapabilityManifest(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
