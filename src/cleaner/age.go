// age.go
package cleaner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

var digitRunPattern = regexp.MustCompile(`\d+`)

// ageKeywords maps free-text age descriptions to point estimates. Scanned in
// order; the first substring hit wins.
var ageKeywords = []struct {
	keyword string
	age     int
}{
	{"teen", 15},
	{"teenager", 15},
	{"adult", 30},
	{"child", 8},
	{"boy", 10},
	{"girl", 10},
	{"young", 25},
	{"elderly", 70},
	{"middle", 45},
}

// ParseAge extracts a point-estimate age from a raw field value.
// Precedence: explicit missing tokens, first run of digits in (0,120),
// keyword table, missing. Free-text values like "ca. 30 years" or "Teen"
// degrade to a best-effort estimate instead of failing the row.
func ParseAge(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch s {
	case "", "nan", "unknown", "?":
		return 0, false
	}

	if digits := digitRunPattern.FindString(s); digits != "" {
		if age, err := strconv.Atoi(digits); err == nil && age > 0 && age < 120 {
			return age, true
		}
	}

	for _, kw := range ageKeywords {
		if strings.Contains(s, kw.keyword) {
			return kw.age, true
		}
	}

	return 0, false
}

// CleanAgeColumn coerces Age to an integer column, parsing free-text
// descriptions and rejecting values outside (0,120).
func (c *Cleaner) CleanAgeColumn() *Cleaner {
	if !c.hasColumn("Age") {
		return c
	}

	s := c.df.Col("Age")
	vals := make([]string, s.Len())
	valid := 0
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			vals[i] = naToken
			continue
		}
		age, ok := ParseAge(el.String())
		if !ok {
			vals[i] = naToken
			continue
		}
		vals[i] = strconv.Itoa(age)
		valid++
	}
	c.df = c.df.Mutate(series.New(vals, series.Int, "Age"))
	c.logStep("Cleaned Age column - valid ages: %d", valid)

	return c
}
