// prune.go
package cleaner

import (
	"regexp"
)

// unnamedPattern matches the auto-generated header names a spreadsheet
// export produces for blank columns.
var unnamedPattern = regexp.MustCompile(`^Unnamed`)

// RemoveEmptyColumns drops columns that are entirely missing, plus unnamed
// columns whose missing fraction exceeds 0.95. The order of the surviving
// columns is unchanged.
func (c *Cleaner) RemoveEmptyColumns() *Cleaner {
	var drop []string
	for _, name := range c.df.Names() {
		frac := missingFraction(c.df.Col(name))
		if frac == 1 || (unnamedPattern.MatchString(name) && frac > 0.95) {
			drop = append(drop, name)
		}
	}

	if len(drop) > 0 {
		c.df = c.df.Drop(drop)
	}
	c.logStep("Removed %d empty/unnamed columns", len(drop))

	return c
}

// HandleMissingValues drops every column whose missing fraction exceeds
// threshold. Runs last so the fractions reflect the normalized values.
func (c *Cleaner) HandleMissingValues(threshold float64) *Cleaner {
	var drop []string
	for _, name := range c.df.Names() {
		if missingFraction(c.df.Col(name)) > threshold {
			drop = append(drop, name)
		}
	}

	if len(drop) > 0 {
		c.df = c.df.Drop(drop)
	}
	c.logStep("Dropped %d columns with >%.0f%% missing values", len(drop), threshold*100)

	return c
}
