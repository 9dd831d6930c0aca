package factcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVerdictWellFormed(t *testing.T) {
	v := ParseVerdict("LABEL: False\nEXPLANATION: Contradicted by multiple sources.\nCONFIDENCE: 0.92")
	require.Equal(t, LabelFalse, v.Label)
	require.Equal(t, "Contradicted by multiple sources.", v.Explanation)
	require.InDelta(t, 0.92, v.Confidence, 1e-9)
	require.Empty(t, v.Repeated)
}

func TestParseVerdictDefaults(t *testing.T) {
	v := ParseVerdict("I could not decide.")
	require.Equal(t, LabelUnverifiable, v.Label)
	require.Equal(t, "Unable to determine accuracy.", v.Explanation)
	require.Equal(t, 0.5, v.Confidence)
}

func TestParseVerdictTitleCasesLabel(t *testing.T) {
	cases := map[string]Label{
		"LABEL: TRUE":           LabelTrue,
		"LABEL: misleading":     LabelMisleading,
		"LABEL: [UNVERIFIABLE]": LabelUnverifiable,
		"  LABEL: **FALSE**  ":  LabelFalse,
	}
	for input, want := range cases {
		require.Equal(t, want, ParseVerdict(input).Label, input)
	}
}

func TestParseVerdictPrefixesAreCaseSensitive(t *testing.T) {
	v := ParseVerdict("label: True\nExplanation: lower\nconfidence: 0.9")
	require.Equal(t, LabelUnverifiable, v.Label)
	require.Equal(t, "Unable to determine accuracy.", v.Explanation)
	require.Equal(t, 0.5, v.Confidence)
}

func TestParseVerdictLastOccurrenceWins(t *testing.T) {
	v := ParseVerdict("LABEL: TRUE\nLABEL: FALSE\nEXPLANATION: first\nEXPLANATION: second\nCONFIDENCE: 0.1\nCONFIDENCE: 0.8")
	require.Equal(t, LabelFalse, v.Label)
	require.Equal(t, "second", v.Explanation)
	require.InDelta(t, 0.8, v.Confidence, 1e-9)
	require.Equal(t, []string{"LABEL", "EXPLANATION", "CONFIDENCE"}, v.Repeated)
}

func TestParseVerdictConfidenceBounds(t *testing.T) {
	cases := map[string]float64{
		"CONFIDENCE: high":   0.5,
		"CONFIDENCE: ":       0.5,
		"CONFIDENCE: NaN":    0.5,
		"CONFIDENCE: +Inf":   0.5,
		"CONFIDENCE: 1.7":    1.0,
		"CONFIDENCE: -2":     0.0,
		"CONFIDENCE: [0.75]": 0.75,
		"CONFIDENCE: 0":      0.0,
	}
	for input, want := range cases {
		got := ParseVerdict(input).Confidence
		require.InDelta(t, want, got, 1e-9, input)
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, 1.0)
	}
}

func TestParseVerdictHandlesCRLF(t *testing.T) {
	v := ParseVerdict("LABEL: TRUE\r\nEXPLANATION: Confirmed.\r\nCONFIDENCE: 0.7\r\n")
	require.Equal(t, LabelTrue, v.Label)
	require.Equal(t, "Confirmed.", v.Explanation)
	require.InDelta(t, 0.7, v.Confidence, 1e-9)
}
