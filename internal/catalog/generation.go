package catalog

import (
	"strconv"
	"strings"
)

// GenerationOf returns the roman-numeral label of the generation containing
// number. Numeric labels are romanized; other labels are returned as-is.
func (c *Catalog) GenerationOf(number int) (string, bool) {
	for _, g := range c.generations {
		if !g.Contains(number) {
			continue
		}
		if n, err := strconv.Atoi(g.Label); err == nil && n > 0 {
			return Romanize(n), true
		}
		return g.Label, true
	}
	return "", false
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Romanize converts a positive integer to roman numerals. Non-positive input
// yields an empty string.
func Romanize(n int) string {
	var sb strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			sb.WriteString(r.symbol)
			n -= r.value
		}
	}
	return sb.String()
}
