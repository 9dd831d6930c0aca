package factcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint("The sky is green today.")
	require.Len(t, a, 16)
	require.Equal(t, a, Fingerprint("The sky is green today."))
	require.NotEqual(t, a, Fingerprint("The sky is blue today."))
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "héll", TruncateRunes("héllo", 4))
	require.Equal(t, "héllo", TruncateRunes("héllo", 10))
	require.Empty(t, TruncateRunes("héllo", 0))
}
