package factcheck

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	prefixLabel       = "LABEL:"
	prefixExplanation = "EXPLANATION:"
	prefixConfidence  = "CONFIDENCE:"

	defaultExplanation = "Unable to determine accuracy."
	defaultConfidence  = 0.5
)

// Verdict is the parsed form of the synthesis reply.
type Verdict struct {
	Label       Label
	Explanation string
	Confidence  float64
	// Repeated lists the prefixes that appeared more than once; the last
	// occurrence of each is the one kept.
	Repeated []string
}

// ParseVerdict scans the reply line by line for the LABEL, EXPLANATION and
// CONFIDENCE prefixes. Prefixes are case-sensitive.
func ParseVerdict(text string) Verdict {
	v := Verdict{
		Label:       LabelUnverifiable,
		Explanation: defaultExplanation,
		Confidence:  defaultConfidence,
	}

	seen := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, prefixLabel):
			seen[prefixLabel]++
			if label := normalizeLabel(strings.TrimPrefix(line, prefixLabel)); label != "" {
				v.Label = label
			}
		case strings.HasPrefix(line, prefixExplanation):
			seen[prefixExplanation]++
			if explanation := strings.TrimSpace(strings.TrimPrefix(line, prefixExplanation)); explanation != "" {
				v.Explanation = explanation
			}
		case strings.HasPrefix(line, prefixConfidence):
			seen[prefixConfidence]++
			v.Confidence = parseConfidence(strings.TrimPrefix(line, prefixConfidence))
		}
	}

	for _, prefix := range []string{prefixLabel, prefixExplanation, prefixConfidence} {
		if seen[prefix] > 1 {
			v.Repeated = append(v.Repeated, strings.TrimSuffix(prefix, ":"))
		}
	}
	return v
}

func normalizeLabel(raw string) Label {
	raw = strings.Trim(strings.TrimSpace(raw), "[]*\"'")
	if raw == "" {
		return ""
	}
	return Label(cases.Title(language.English).String(raw))
}

// parseConfidence falls back to 0.5 on malformed numbers and clamps the rest into [0, 1].
func parseConfidence(raw string) float64 {
	value, err := strconv.ParseFloat(strings.Trim(strings.TrimSpace(raw), "[]"), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return defaultConfidence
	}
	return math.Min(1, math.Max(0, value))
}
