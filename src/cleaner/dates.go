// dates.go
package cleaner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-gota/gota/series"
)

// dayMonthPattern matches "14th June", "3 July", "22nd  August" style
// fragments inside the free-text Date field.
var dayMonthPattern = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+([A-Za-z]+)`)

var yearDigits = regexp.MustCompile(`^\d+$`)

// ParseIncidentDate resolves a calendar date from the free-text Date field
// and the separate Year field. The day and month name come from the Date
// text; the year must be a plain integer string. Any failure yields ok=false,
// never an error.
func ParseIncidentDate(dateStr, yearStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	yearStr = strings.TrimSpace(yearStr)

	m := dayMonthPattern.FindStringSubmatch(dateStr)
	if m == nil || !yearDigits.MatchString(yearStr) {
		return time.Time{}, false
	}

	t, err := time.Parse("2 January 2006", fmt.Sprintf("%s %s %s", m[1], m[2], yearStr))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDates derives a Date_Parsed column from the Date and Year fields and
// coerces Year to a numeric column. Unresolvable dates and non-numeric years
// become missing; rows are never dropped here.
func (c *Cleaner) ParseDates() *Cleaner {
	hasYear := c.hasColumn("Year")

	if c.hasColumn("Date") && hasYear {
		dates := c.df.Col("Date")
		years := c.df.Col("Year")
		parsed := make([]string, dates.Len())
		count := 0
		for i := 0; i < dates.Len(); i++ {
			dateEl := dates.Elem(i)
			yearEl := years.Elem(i)
			if dateEl.IsNA() || yearEl.IsNA() {
				parsed[i] = naToken
				continue
			}
			t, ok := ParseIncidentDate(dateEl.String(), yearEl.String())
			if !ok {
				parsed[i] = naToken
				continue
			}
			parsed[i] = t.Format("2006-01-02")
			count++
		}
		c.df = c.df.Mutate(series.New(parsed, series.String, "Date_Parsed"))
		c.logStep("Parsed %d dates successfully", count)
	}

	if hasYear {
		// Re-creating the column as an Int series turns every non-numeric
		// record into NA.
		records := c.df.Col("Year").Records()
		for i, r := range records {
			records[i] = strings.TrimSpace(r)
		}
		c.df = c.df.Mutate(series.New(records, series.Int, "Year"))
	}

	return c
}
