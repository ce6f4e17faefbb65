package entities

import "strings"

const cardLength = 16

// NormalizeCard strips spaces and dashes and reports whether 16 digits remain
func NormalizeCard(card string) (string, bool) {
	var b strings.Builder
	for _, r := range card {
		switch {
		case r == ' ' || r == '-':
			continue
		case r < '0' || r > '9':
			return "", false
		}
		b.WriteRune(r)
	}

	normalized := b.String()
	if len(normalized) != cardLength {
		return "", false
	}
	return normalized, true
}

// MaskCard renders a normalized card as "1111 **** **** 4444"
func MaskCard(card string) string {
	if len(card) != cardLength {
		return "****"
	}
	return card[:4] + " **** **** " + card[12:]
}
