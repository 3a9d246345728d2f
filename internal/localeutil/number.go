package localeutil

import (
	"strconv"
	"strings"
)

// ParseNumber accepts a plain decimal integer or decimal token: an
// optional leading '-', digits, and at most one '.'. Thousands separators
// are not recognized — this substitutes for the reference's locale-
// sensitive icu::NumberFormat::parse, narrowed to the en-shaped numeral
// forms the bundled test corpora exercise (a documented limitation, not a
// silent one).
func ParseNumber(s string) (value float64, isInteger bool, ok bool) {
	if s == "" {
		return 0, false, false
	}

	body := s
	negative := false

	if strings.HasPrefix(body, "-") {
		negative = true
		body = body[1:]
	}

	if body == "" {
		return 0, false, false
	}

	dotCount := 0

	for _, r := range body {
		switch {
		case r == '.':
			dotCount++
		case r < '0' || r > '9':
			return 0, false, false
		}
	}

	if dotCount > 1 {
		return 0, false, false
	}

	parsed, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return 0, false, false
	}

	if negative {
		parsed = -parsed
	}

	return parsed, dotCount == 0, true
}

var ones = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// SpellUnder100 spells an integer in [0, 100).
func SpellUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}

	tensPart := tens[n/10]
	if n%10 == 0 {
		return tensPart
	}

	return tensPart + "-" + ones[n%10]
}

// SpellCardinal spells an arbitrary non-negative integer as English words,
// grouped by thousands. This is the plain-cardinal reading, used whenever
// ShouldUseYearForm reports false.
func SpellCardinal(n int64) string {
	if n == 0 {
		return "zero"
	}

	if n < 0 {
		return "negative " + SpellCardinal(-n)
	}

	var groups []string

	scales := []struct {
		value int64
		name  string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}

	remaining := n

	for _, scale := range scales {
		if remaining >= scale.value {
			count := remaining / scale.value
			groups = append(groups, SpellCardinal(count)+" "+scale.name)
			remaining %= scale.value
		}
	}

	if remaining > 0 || len(groups) == 0 {
		groups = append(groups, spellUnder1000(remaining))
	}

	return strings.Join(groups, " ")
}

func spellUnder1000(n int64) string {
	if n < 100 {
		return SpellUnder100(n)
	}

	hundreds := n / 100
	rest := n % 100

	if rest == 0 {
		return ones[hundreds] + " hundred"
	}

	return ones[hundreds] + " hundred " + SpellUnder100(rest)
}

// ShouldUseYearForm reports whether n falls in the range the reference's
// rule-based formatter names with a "-year" rule set. The reference's own
// guard is "(n > 1000) || (n < 3000)", which is true for every int64 and
// so always selects the year form; per the documented fix, this
// implementation uses the conjunction the guard was clearly meant to
// express.
func ShouldUseYearForm(n int64) bool {
	return n > 1000 && n < 3000
}

// SpellYear spells n the way a year is normally read aloud in English:
// "nineteen eighty-four" for 1984, "nineteen oh five" for 1905, "nineteen
// hundred" for 1900, "twenty hundred" for 2000.
func SpellYear(n int64) string {
	if n < 0 {
		return SpellCardinal(n)
	}

	century := n / 100
	remainder := n % 100

	if century == 0 {
		return SpellCardinal(n)
	}

	if remainder == 0 {
		return SpellUnder100(century) + " hundred"
	}

	if remainder < 10 {
		return SpellUnder100(century) + " oh " + ones[remainder]
	}

	return SpellUnder100(century) + " " + SpellUnder100(remainder)
}

// Spell formats a parsed number for insertion into normalized text: years
// in the documented range read as spoken years, everything else (and all
// decimals) reads as a plain cardinal.
func Spell(value float64, isInteger bool) string {
	if !isInteger {
		return spellDecimal(value)
	}

	n := int64(value)
	if ShouldUseYearForm(n) {
		return SpellYear(n)
	}

	return SpellCardinal(n)
}

func spellDecimal(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	whole := int64(value)
	text := strconv.FormatFloat(value, 'f', -1, 64)

	var fracDigits string
	if idx := strings.IndexByte(text, '.'); idx >= 0 {
		fracDigits = text[idx+1:]
	}

	var b strings.Builder
	if negative {
		b.WriteString("negative ")
	}

	b.WriteString(SpellCardinal(whole))

	if fracDigits != "" {
		b.WriteString(" point")
		for _, d := range fracDigits {
			b.WriteString(" ")
			b.WriteString(ones[d-'0'])
		}
	}

	return b.String()
}
