// cleaner.go
package cleaner

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"sharkwatch/src/utils"
)

// Cleaner runs the shark attack dataset through a fixed sequence of
// per-column normalization steps. It owns the DataFrame for the duration
// of cleaning; every step is a no-op when its target column is absent and
// never fails on a malformed value.
type Cleaner struct {
	df      dataframe.DataFrame
	verbose bool
	log     []string
}

// Report summarizes what the pipeline did.
type Report struct {
	StepsPerformed int
	Log            []string
	Rows           int
	Cols           int
	Columns        []string
}

func New(df dataframe.DataFrame, verbose bool) *Cleaner {
	return &Cleaner{df: df, verbose: verbose}
}

// DataFrame returns the table in its current state.
func (c *Cleaner) DataFrame() dataframe.DataFrame {
	return c.df
}

func (c *Cleaner) logStep(format string, args ...interface{}) {
	if c.verbose {
		c.log = append(c.log, fmt.Sprintf(format, args...))
	}
}

// CleanAll runs the complete pipeline and returns the cleaned table.
// threshold is the missing-value fraction above which a column is dropped
// in the final pruning step.
func (c *Cleaner) CleanAll(threshold float64) dataframe.DataFrame {
	c.logStep("Starting cleaning pipeline - initial shape: %dx%d", c.df.Nrow(), c.df.Ncol())

	c.RemoveEmptyColumns().
		RemoveDuplicates().
		CleanSexColumn().
		CleanFatalColumn().
		CleanTypeColumn().
		CleanAgeColumn().
		CleanCountryColumn().
		CleanActivityColumn().
		CleanSpeciesColumn().
		ParseDates().
		HandleMissingValues(threshold)

	c.logStep("Cleaning complete - final shape: %dx%d", c.df.Nrow(), c.df.Ncol())
	return c.df
}

// RemoveDuplicates drops rows that are equal across every column.
func (c *Cleaner) RemoveDuplicates() *Cleaner {
	records := c.df.Records()
	if len(records) <= 1 {
		return c
	}

	seen := make(map[string]bool, len(records)-1)
	keep := make([]int, 0, len(records)-1)
	for i, rec := range records[1:] {
		key := strings.Join(rec, "\x1f")
		if !seen[key] {
			seen[key] = true
			keep = append(keep, i)
		}
	}

	removed := c.df.Nrow() - len(keep)
	if removed > 0 {
		c.df = c.df.Subset(keep)
	}
	c.logStep("Removed %d duplicate rows", removed)

	return c
}

func (c *Cleaner) GetReport() Report {
	return Report{
		StepsPerformed: len(c.log),
		Log:            c.log,
		Rows:           c.df.Nrow(),
		Cols:           c.df.Ncol(),
		Columns:        c.df.Names(),
	}
}

// mapStringColumn rewrites one column element-wise. fn receives the raw
// string value and whether it is NA, and returns the replacement; returning
// the NA marker makes the element missing.
func (c *Cleaner) mapStringColumn(col string, fn func(v string, na bool) string) {
	s := c.df.Col(col)
	vals := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		vals[i] = fn(el.String(), el.IsNA())
	}
	c.df = c.df.Mutate(series.New(vals, series.String, col))
}

func (c *Cleaner) hasColumn(name string) bool {
	return utils.HasColumn(c.df, name)
}

// missingFraction is the share of NA elements in a series.
func missingFraction(s series.Series) float64 {
	if s.Len() == 0 {
		return 0
	}
	na := 0
	for i := 0; i < s.Len(); i++ {
		if s.Elem(i).IsNA() {
			na++
		}
	}
	return float64(na) / float64(s.Len())
}

// uniqueValues collects the distinct non-NA values of a column, used for
// step-log messages only.
func uniqueValues(s series.Series) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		if v := el.String(); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
