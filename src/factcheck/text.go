package factcheck

import (
	"fmt"

	"github.com/OneOfOne/xxhash"
)

// Fingerprint identifies a text in logs without recording its content.
func Fingerprint(text string) string {
	return fmt.Sprintf("%016x", xxhash.ChecksumString64(text))
}

// TruncateRunes cuts s to at most n characters.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
