package providers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProviderList(t *testing.T) {
	refs := ParseProviderList("openrouter|ollama:nomic| ")
	require.Len(t, refs, 2)
	require.Equal(t, "openrouter", refs[0].Name)
	require.Equal(t, "ollama", refs[1].Name)
	require.Equal(t, "nomic", refs[1].KeyAlias)
}

func TestParseProviderListEmptyFallsBackToMock(t *testing.T) {
	refs := ParseProviderList("")
	require.Len(t, refs, 1)
	require.Equal(t, "mock", refs[0].Name)
}
