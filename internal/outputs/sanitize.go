package outputs

import "strings"

// Sanitize maps a free-form string onto the allow-list [A-Za-z0-9_-].
// Every other rune becomes an underscore, runs of underscores collapse to
// one, and leading/trailing underscores are trimmed. An empty result becomes
// "unknown" so folder names never lose a segment.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	result := strings.Trim(b.String(), "_")
	if result == "" {
		return "unknown"
	}
	return result
}
