// Package cpf validates Brazilian individual taxpayer registry numbers
// (Cadastro de Pessoas Físicas), including the two check digits.
package cpf

import "strings"

// IsValid reports whether s is a well-formed CPF. Punctuation
// ("123.456.789-09") is tolerated; the checksum is always verified.
func IsValid(s string) bool {
	digits := strip(s)
	if len(digits) != 11 {
		return false
	}

	// CPFs with all digits equal (e.g. 111.111.111-11) pass the checksum
	// but are rejected by the registry.
	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits[:9], 10) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits[:10], 11) == int(digits[10]-'0')
}

func strip(s string) string {
	var b strings.Builder
	b.Grow(11)
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == ' ':
			// separators are ignored
		default:
			return ""
		}
	}
	return b.String()
}

func checkDigit(digits string, startWeight int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * (startWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
