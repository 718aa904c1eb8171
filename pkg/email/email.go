// Package email derives presentation-friendly names from addresses. The demo
// account never goes through sign-up, so its display name comes from the
// address itself.
package email

import (
	"strings"
	"unicode"
)

// DisplayName builds a readable name from the local part of an address.
// "jane.doe@shop.com" becomes "Jane Doe"; unusable input falls back to "User".
func DisplayName(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "User"
	}

	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
