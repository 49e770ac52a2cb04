package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster-core/internal/diagnostics"
)

func TestValidate_Valid(t *testing.T) {
	data := []byte(`{
		"name": "aster.http_client",
		"version": "1.2.3",
		"dependencies": {"aster.json": "^1.0.0"},
		"effects": ["Io"],
		"capabilities": {"allow": ["Http", "Time"], "deny": ["Secrets"]}
	}`)

	m, diags := Validate(data)
	require.Empty(t, diags, "expected no diagnostics for a valid manifest")
	require.NotNil(t, m)
	assert.Equal(t, "aster.http_client", m.Name)
	assert.Equal(t, "1.2.3", m.Version)
	assert.Equal(t, []string{"Http", "Time"}, m.Allow)
	assert.Equal(t, []string{"Secrets"}, m.Deny)
}

func TestValidate_BadPackageName(t *testing.T) {
	_, diags := Validate([]byte(`{"name": "Bad-Name!"}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM003BadPackageName, diags[0].Code)
}

func TestValidate_BadVersion(t *testing.T) {
	_, diags := Validate([]byte(`{"name": "ok", "version": "v1"}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM004BadVersion, diags[0].Code)
}

func TestValidate_BadConstraint(t *testing.T) {
	_, diags := Validate([]byte(`{"dependencies": {"aster.json": "latest"}}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM005BadConstraint, diags[0].Code)
}

func TestValidate_BadEffectName(t *testing.T) {
	_, diags := Validate([]byte(`{"effects": ["io"]}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM006BadEffectName, diags[0].Code)
}

func TestValidate_UnknownField(t *testing.T) {
	_, diags := Validate([]byte(`{"name": "ok", "extra": true}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM007UnknownField, diags[0].Code)
}

func TestValidate_UnknownCapability(t *testing.T) {
	_, diags := Validate([]byte(`{"capabilities": {"allow": ["Network"]}}`))
	require.NotEmpty(t, diags)
	assert.Equal(t, diagnostics.CodeM008BadCapability, diags[0].Code)
}

func TestValidate_BadJSON(t *testing.T) {
	_, diags := Validate([]byte(`{not json`))
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeM001JSONParse, diags[0].Code)
}

func TestParseManifest_FileNotFound(t *testing.T) {
	_, diags := ParseManifest("/does/not/exist.json")
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeM002FileNotFound, diags[0].Code)
}
