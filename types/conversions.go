package types

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Number parsing follows the rules page content was authored against: ParseFloat reads the
// longest numeric prefix of a cell, ToNumber requires the whole trimmed string to be numeric.

var (
	floatPrefix    = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	decimalLiteral = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)$`)
	radixLiteral   = regexp.MustCompile(`^0([xXoObB])([0-9a-fA-F]+)$`)
)

// ParseFloat parses the leading number of value. The second return value is false when value
// does not start with a number.
func ParseFloat(value string) (float64, bool) {
	match := floatPrefix.FindString(strings.TrimLeftFunc(value, isSpace))
	if match == "" {
		return math.NaN(), false
	}
	return parseDecimal(match), true
}

// ToNumber converts the whole of value to a number. Blank strings convert to 0.
func ToNumber(value string) (float64, bool) {
	trimmed := strings.TrimFunc(value, isSpace)
	if trimmed == "" {
		return 0, true
	}

	if decimalLiteral.MatchString(trimmed) {
		return parseDecimal(trimmed), true
	}

	if groups := radixLiteral.FindStringSubmatch(trimmed); groups != nil {
		base := map[string]int{"x": 16, "o": 8, "b": 2}[strings.ToLower(groups[1])]
		n, err := strconv.ParseUint(groups[2], base, 64)
		if err == nil {
			return float64(n), true
		}
	}

	return math.NaN(), false
}

// FormatNumber renders a number the way the host renders numeric values as text.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case value == 0:
		return "0"
	}

	abs := math.Abs(value)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(value, 'e', -1, 64)
		mantissa, exp := s[:strings.IndexByte(s, 'e')], s[strings.IndexByte(s, 'e')+1:]
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatFixed renders value with exactly two decimals. Values that can not be written that way
// (infinities, NaN and magnitudes from 1e21 up) fall back to FormatNumber.
func FormatFixed(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) >= 1e21 {
		return FormatNumber(value)
	}
	if value == 0 {
		return "0.00"
	}

	// strconv rounds exact halves to even, page values round them away from zero.
	abs := math.Abs(value)
	if eighths := abs * 8; eighths == math.Trunc(eighths) && math.Mod(eighths, 2) == 1 {
		rounded := (math.Floor(abs*100) + 1) / 100
		return strconv.FormatFloat(math.Copysign(rounded, value), 'f', 2, 64)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func parseDecimal(literal string) float64 {
	switch strings.TrimLeft(literal, "+") {
	case "Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(literal, 64)
	var numErr *strconv.NumError
	if err != nil && !(errors.As(err, &numErr) && numErr.Err == strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return false
}
