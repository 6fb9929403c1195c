/*
* Utility functions for formatting output.
 */
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Print string with max length, truncating with ellipsis.
func Abbrev(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max-1] + "…"
}

// Integer with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// Shortest decimal representation of a percentage, always with at least one
// digit after the point.
func Percent(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	if math.IsInf(p, 0) {
		return strconv.FormatFloat(p, 'f', -1, 64)
	}

	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

// Signed percentage rounded to one decimal place, for tables.
func Change(p float64) string {
	if math.IsNaN(p) {
		return "-"
	}

	return fmt.Sprintf("%+.1f%%", p)
}
