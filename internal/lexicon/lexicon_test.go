package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiWordKeywordsSortedDescendingByLength(t *testing.T) {
	en := English()
	phrases := en.MultiWordKeywords()
	for i := 1; i < len(phrases); i++ {
		assert.GreaterOrEqual(t, len(phrases[i-1]), len(phrases[i]))
	}
	assert.Contains(t, phrases, "This module is")
	assert.Contains(t, phrases, "as one of")
}

func TestMultiWordKeywordsCachedPerLexiconID(t *testing.T) {
	en := English()
	first := en.MultiWordKeywords()
	second := en.MultiWordKeywords()
	assert.Equal(t, first, second)
}

func TestRegisterInvalidatesMultiWordCache(t *testing.T) {
	r := newRegistry()
	en := English()
	r.Register(en)
	_ = en.MultiWordKeywords() // populate the cache under "en"

	modified := English()
	modified.SourceKeywords[KwAsOneOf] = "as one of the following"
	r.Register(modified)

	phrases := modified.MultiWordKeywords()
	assert.Contains(t, phrases, "as one of the following")
}

func TestRegistryDefaultsToFirstRegistered(t *testing.T) {
	r := newRegistry()
	en := English()
	r.Register(en)
	assert.Equal(t, en, r.GetDefault())
}

func TestRegistrySetDefaultPanicsOnUnknownID(t *testing.T) {
	r := newRegistry()
	r.Register(English())
	assert.Panics(t, func() { r.SetDefault("fr") })
}

func TestGlobalRegistryHasBuiltinLocales(t *testing.T) {
	g := Global()
	require.NotNil(t, g.Get("en"))
	require.NotNil(t, g.Get("zh-CN"))
	assert.Equal(t, "en", g.GetDefault().ID)
}

func TestResetRearmsGlobalInit(t *testing.T) {
	g := Global()
	g.Reset()
	assert.Nil(t, g.Get("en"), "Reset must clear the registered locales")

	again := Global()
	require.NotNil(t, again.Get("en"), "Global() must repopulate built-ins after Reset")
	assert.Equal(t, "en", again.GetDefault().ID)
}
