package core

// convert.go turns tokens into numbers.
//
// Tokens are held to a strict decimal format before conversion so that
// strconv's extras (hex floats, "Inf", "NaN", underscores) never reach the sum.
// Accepted:
//   - integers: "7", "+7", "-7"
//   - decimals: "1.5", ".5", "5."
//   - exponents: "1e3", "2.5E-2"

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a trimmed token is a plain decimal number.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber converts a single token to a finite float64.
// Surrounding whitespace is ignored. On failure the returned error carries
// the token exactly as given so the user sees what they typed.
func ParseNumber(token string) (float64, error) {
	s := strings.TrimSpace(token)
	if s == "" || !numericRegex.MatchString(s) {
		return 0, newInvalidNumber(token)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, newInvalidNumber(token)
	}
	return v, nil
}

// FormatNumber renders v in the shortest form that parses back to v,
// without exponent notation for ordinary magnitudes ("6", "2.5", "-3").
func FormatNumber(v float64) string {
	if v == 0 {
		// Normalizes -0.
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
