package ascii

import (
	"fmt"
	"strings"
)

// UnescapeUnicode resolves every `\U+XXXX` sequence in s to its literal
// code point. It is applied on read regardless of version: pre-R2007 files
// use the escape for any non-ASCII character, but a reader must also
// tolerate the escape appearing in newer files carried forward unchanged.
func UnescapeUnicode(s string) string {
	if !strings.Contains(s, `\U+`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if i+7 <= len(s) && s[i] == '\\' && s[i+1] == 'U' && s[i+2] == '+' && isHex4(s[i+3:i+7]) {
			var cp int64
			fmt.Sscanf(s[i+3:i+7], "%04x", &cp)
			b.WriteRune(rune(cp))
			i += 7
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func isHex4(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// EscapeNonASCII converts every rune above 0x7F into a `\U+XXXX` escape.
// Applied on write whenever the target version predates R2007:
// legacy single/double-byte code pages make any non-ASCII byte sequence
// ambiguous across locales, so this library always escapes instead of
// gambling on codepage round-trip fidelity.
func EscapeNonASCII(s string) string {
	hasNonASCII := false
	for _, r := range s {
		if r > 0x7F {
			hasNonASCII = true
			break
		}
	}
	if !hasNonASCII {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > 0x7F {
			fmt.Fprintf(&b, `\U+%04X`, r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
