package adapter

import "strings"

// fallbackName is used when both the input and the caller's fallback
// sanitize to nothing.
const fallbackName = "generated"

// SanitizeName reduces s to ASCII letters, digits, '-' and '_'. Any other
// character becomes '-', runs of separators collapse to their first
// character, and leading or trailing separators are trimmed. If nothing is
// left, the sanitized fallback is returned.
//
// SanitizeName is idempotent.
func SanitizeName(s, fallback string) string {
	if out := sanitize(s); out != "" {
		return out
	}
	if out := sanitize(fallback); out != "" {
		return out
	}
	return fallbackName
}

func sanitize(s string) string {
	var b strings.Builder
	prevSep := true // drops leading separators
	for _, r := range s {
		sep := r == '-' || r == '_'
		if !sep && !isNameChar(r) {
			r, sep = '-', true
		}
		if sep {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), "-_")
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// ComponentSymbol turns a name into a PascalCase identifier usable as a
// component or class name ("landing-screen" -> "LandingScreen"). Names
// that would start with a digit are prefixed with '_'.
func ComponentSymbol(name, fallback string) string {
	parts := strings.FieldsFunc(SanitizeName(name, fallback), func(r rune) bool {
		return r == '_' || r == '-'
	})

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}

	symbol := b.String()
	if symbol[0] >= '0' && symbol[0] <= '9' {
		symbol = "_" + symbol
	}
	return symbol
}
