// categorical.go
package cleaner

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// naToken is gota's string NA marker; assigning it to an element makes the
// value missing rather than the literal string.
const naToken = "NaN"

// sexMapping collapses raw Sex values onto the canonical {M, F} domain.
var sexMapping = map[string]string{
	"M":      "M",
	"F":      "F",
	"MALE":   "M",
	"FEMALE": "F",
	"N":      naToken,
	"NAN":    naToken,
	".":      naToken,
	"":       naToken,
}

// fatalMapping collapses raw Fatal Y/N values onto {Y, N}. The "F" key maps
// to "Y": in this column "F" abbreviates Fatal, not Female. "2017" is a stray
// year value that leaks in from the Date column.
var fatalMapping = map[string]string{
	"Y":       "Y",
	"N":       "N",
	"YES":     "Y",
	"NO":      "N",
	"F":       "Y",
	"M":       naToken,
	"UNKNOWN": naToken,
	"NAN":     naToken,
	"":        naToken,
	"2017":    naToken,
}

// typeInvalidMarkers are Type values that carry no incident classification.
var typeInvalidMarkers = []string{"Invalid", "Questionable", "Unconfirmed", "Unverified"}

// countryMapping merges country-name variants into one canonical spelling.
// Keys are matched after trimming and uppercasing.
var countryMapping = map[string]string{
	"USA":                      "USA",
	"UNITED STATES":            "USA",
	"UNITED STATES OF AMERICA": "USA",
	"US":                       "USA",
	"AUSTRALIA":                "AUSTRALIA",
	"SOUTH AFRICA":             "SOUTH AFRICA",
	"RSA":                      "SOUTH AFRICA",
	"REPUBLIC OF SOUTH AFRICA": "SOUTH AFRICA",
	"ENGLAND":                  "UNITED KINGDOM",
	"SCOTLAND":                 "UNITED KINGDOM",
	"WALES":                    "UNITED KINGDOM",
	"UK":                       "UNITED KINGDOM",
}

// speciesInvalidMarkers are values recorded where no species was identified.
var speciesInvalidMarkers = []string{
	"Invalid", "Unknown", "Not stated", "Unconfirmed",
	"Shark involvement not confirmed",
	"Shark involvement prior to death was not confirmed",
	"No shark involvement", "Questionable", "nan",
}

// speciesMapping collapses capitalization and phrasing variants of the most
// frequently reported species.
var speciesMapping = map[string]string{
	"White shark":       "White Shark",
	"white shark":       "White Shark",
	"Great white shark": "White Shark",
	"Great White Shark": "White Shark",
	"Tiger shark":       "Tiger Shark",
	"tiger shark":       "Tiger Shark",
	"Bull shark":        "Bull Shark",
	"bull shark":        "Bull Shark",
}

var titleCaser = cases.Title(language.English)

// CleanSexColumn restricts Sex to the canonical {M, F} domain.
func (c *Cleaner) CleanSexColumn() *Cleaner {
	if !c.hasColumn("Sex") {
		return c
	}

	c.mapStringColumn("Sex", func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.ToUpper(strings.TrimSpace(v))
		if mapped, ok := sexMapping[v]; ok {
			v = mapped
		}
		if v != "M" && v != "F" {
			return naToken
		}
		return v
	})
	c.logStep("Cleaned Sex column - unique values: %v", uniqueValues(c.df.Col("Sex")))

	return c
}

// CleanFatalColumn restricts Fatal Y/N to the canonical {Y, N} domain.
func (c *Cleaner) CleanFatalColumn() *Cleaner {
	if !c.hasColumn("Fatal Y/N") {
		return c
	}

	c.mapStringColumn("Fatal Y/N", func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.ToUpper(strings.TrimSpace(v))
		if mapped, ok := fatalMapping[v]; ok {
			v = mapped
		}
		if v != "Y" && v != "N" {
			return naToken
		}
		return v
	})
	c.logStep("Cleaned Fatal Y/N column - unique values: %v", uniqueValues(c.df.Col("Fatal Y/N")))

	return c
}

// CleanTypeColumn trims Type values and blanks out the invalid markers.
func (c *Cleaner) CleanTypeColumn() *Cleaner {
	if !c.hasColumn("Type") {
		return c
	}

	c.mapStringColumn("Type", func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.TrimSpace(v)
		for _, marker := range typeInvalidMarkers {
			if strings.EqualFold(v, marker) {
				return naToken
			}
		}
		return v
	})
	c.logStep("Cleaned Type column - unique values: %d", len(uniqueValues(c.df.Col("Type"))))

	return c
}

// CleanCountryColumn uppercases country names and merges known aliases.
// Values outside the alias table are kept as-is: Country stays an open
// categorical, only the spelling variants are collapsed.
func (c *Cleaner) CleanCountryColumn() *Cleaner {
	if !c.hasColumn("Country") {
		return c
	}

	c.mapStringColumn("Country", func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "NAN" || v == "" {
			return naToken
		}
		if mapped, ok := countryMapping[v]; ok {
			return mapped
		}
		return v
	})
	c.logStep("Cleaned Country column - unique countries: %d", len(uniqueValues(c.df.Col("Country"))))

	return c
}

// CleanActivityColumn title-cases the free-text Activity descriptions.
// Activity stays high-cardinality; downstream consumers match on substrings.
func (c *Cleaner) CleanActivityColumn() *Cleaner {
	if !c.hasColumn("Activity") {
		return c
	}

	c.mapStringColumn("Activity", func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.TrimSpace(v)
		if strings.EqualFold(v, "nan") || v == "" {
			return naToken
		}
		return titleCaser.String(v)
	})
	c.logStep("Cleaned Activity column - unique activities: %d", len(uniqueValues(c.df.Col("Activity"))))

	return c
}

// SpeciesColumn reports which variant of the species column the table
// carries. The GSAF export names it "Species " with a trailing space.
func SpeciesColumn(names []string) (string, bool) {
	for _, candidate := range []string{"Species ", "Species"} {
		for _, n := range names {
			if n == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}

// CleanSpeciesColumn blanks invalid markers and merges common species
// name variants.
func (c *Cleaner) CleanSpeciesColumn() *Cleaner {
	col, ok := SpeciesColumn(c.df.Names())
	if !ok {
		return c
	}

	c.mapStringColumn(col, func(v string, na bool) string {
		if na {
			return naToken
		}
		v = strings.TrimSpace(v)
		for _, marker := range speciesInvalidMarkers {
			if v == marker {
				return naToken
			}
		}
		if mapped, ok := speciesMapping[v]; ok {
			return mapped
		}
		return v
	})
	c.logStep("Cleaned Species column - unique species: %d", len(uniqueValues(c.df.Col(col))))

	return c
}
