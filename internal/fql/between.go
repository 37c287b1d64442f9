package fql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// betweenPattern matches "[field] BETWEEN a AND b" where each bound is a
// double-quoted string or a signed decimal.
var betweenPattern = regexp.MustCompile(
	`(?i)(\[[^\]]+\])\s+BETWEEN\s+("[^"]*"|[+-]?\d+(?:\.\d+)?)\s+AND\s+("[^"]*"|[+-]?\d+(?:\.\d+)?)`)

// Preprocess rewrites every BETWEEN expression in query into an equivalent
// ">= min AND <= max" pair, swapping bounds given in descending order. All
// other text passes through unchanged.
func Preprocess(query string) string {
	return betweenPattern.ReplaceAllStringFunc(query, func(match string) string {
		m := betweenPattern.FindStringSubmatch(match)
		field, lower, upper := m[1], m[2], m[3]
		if shouldSwap(lower, upper) {
			lower, upper = upper, lower
		}
		return fmt.Sprintf("%s >= %s AND %s <= %s", field, lower, field, upper)
	})
}

// HasBetween reports whether query contains a BETWEEN expression.
func HasBetween(query string) bool {
	return betweenPattern.MatchString(query)
}

// shouldSwap orders bounds numerically when both are numbers, by timestamp
// when both are dates and lexically otherwise.
func shouldSwap(lower, upper string) bool {
	low, high := strings.Trim(lower, `"`), strings.Trim(upper, `"`)

	ln, lerr := strconv.ParseFloat(low, 64)
	hn, herr := strconv.ParseFloat(high, 64)
	if lerr == nil && herr == nil {
		return ln > hn
	}

	lt, lerr := cast.ToTimeE(low)
	ht, herr := cast.ToTimeE(high)
	if lerr == nil && herr == nil {
		return lt.After(ht)
	}

	return low > high
}
