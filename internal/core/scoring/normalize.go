package scoring

import "strings"

// NormalizeKey lowercases s and drops every rune outside [a-z0-9].
// "Criterion 1: Clarity" becomes "criterion1clarity"; digits are kept.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
