package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestResolveProviders(t *testing.T) {
	require.Equal(t, []string{"gemini", "openai"}, resolveProviders(" ALL "))
	require.Equal(t, []string{"openai", "gemini"}, resolveProviders("OpenAI; gemini,openai  gemini"))
	require.Empty(t, resolveProviders("  "))
}

func TestFirstNonBlank(t *testing.T) {
	require.Equal(t, "b", firstNonBlank("", "  ", "b", "c"))
	require.Empty(t, firstNonBlank("", " "))
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	out := truncate("Ünïcödé wörds", 3)
	require.True(t, utf8.ValidString(out))
	require.Equal(t, "Ünï...(truncated)", out)

	require.Equal(t, "short", truncate("  short  ", 10))
	require.Equal(t, "unbounded", truncate("unbounded", 0))
}
