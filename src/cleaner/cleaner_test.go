// cleaner_test.go
package cleaner

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func rawFixture() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"Date", "Year", "Country", "Activity", "Sex", "Age", "Fatal Y/N", "Species ", "Unnamed: 22"},
		{"Reported 14th June", "1998", "usa", "surfing", "M", "25", "N", "White shark", "NaN"},
		{"Reported 14th June", "1998", "usa", "surfing", "M", "25", "N", "White shark", "NaN"},
		{"3 July", "2005", "AUSTRALIA", "Swimming", "female", "Teen", "Y", "Tiger shark", "NaN"},
		{"Summer", "2001", "england", "Diving", "male", "NaN", "F", "Invalid", "NaN"},
		{"NaN", "NaN", "RSA", "NaN", "N", "middle aged", "2017", "NaN", "NaN"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
}

func TestCleanAll(t *testing.T) {
	c := New(rawFixture(), true)
	out := c.CleanAll(0.9)

	if out.Nrow() != 4 {
		t.Fatalf("rows = %d, want 4 (one duplicate removed)", out.Nrow())
	}
	for _, name := range out.Names() {
		if strings.HasPrefix(name, "Unnamed") {
			t.Errorf("unnamed column %q survived", name)
		}
	}

	for i := 0; i < out.Nrow(); i++ {
		if v := out.Col("Sex").Elem(i); !v.IsNA() && v.String() != "M" && v.String() != "F" {
			t.Errorf("Sex row %d = %q outside {M, F}", i, v.String())
		}
		if v := out.Col("Fatal Y/N").Elem(i); !v.IsNA() && v.String() != "Y" && v.String() != "N" {
			t.Errorf("Fatal Y/N row %d = %q outside {Y, N}", i, v.String())
		}
	}

	if out.Col("Age").Type() != series.Int {
		t.Errorf("Age type = %v, want Int", out.Col("Age").Type())
	}
	if out.Col("Year").Type() != series.Int {
		t.Errorf("Year type = %v, want Int", out.Col("Year").Type())
	}
	if got := out.Col("Date_Parsed").Elem(0).String(); got != "1998-06-14" {
		t.Errorf("Date_Parsed row 0 = %q, want 1998-06-14", got)
	}
	if got := out.Col("Country").Elem(2).String(); got != "UNITED KINGDOM" {
		t.Errorf("Country row 2 = %q, want UNITED KINGDOM", got)
	}
}

func TestCleanAllIdempotent(t *testing.T) {
	once := New(rawFixture(), false).CleanAll(0.9)
	twice := New(once, false).CleanAll(0.9)

	if once.Nrow() != twice.Nrow() || once.Ncol() != twice.Ncol() {
		t.Fatalf("shape changed on second pass: %dx%d -> %dx%d",
			once.Nrow(), once.Ncol(), twice.Nrow(), twice.Ncol())
	}

	a, b := once.Records(), twice.Records()
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Errorf("cell (%d,%d) changed on second pass: %q -> %q", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestRemoveDuplicates(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Country", "Activity"},
		{"USA", "Surfing"},
		{"USA", "Surfing"},
		{"USA", "Swimming"},
		{"USA", "Surfing"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	out := New(df, false).RemoveDuplicates().DataFrame()
	if out.Nrow() != 2 {
		t.Fatalf("rows = %d, want 2", out.Nrow())
	}

	// First occurrence order is preserved.
	if out.Col("Activity").Elem(0).String() != "Surfing" || out.Col("Activity").Elem(1).String() != "Swimming" {
		t.Errorf("unexpected row order: %v", out.Col("Activity").Records())
	}
}

func TestGetReport(t *testing.T) {
	c := New(rawFixture(), true)
	c.CleanAll(0.9)
	report := c.GetReport()

	if report.StepsPerformed == 0 {
		t.Error("verbose run produced no step log")
	}
	if len(report.Log) != report.StepsPerformed {
		t.Errorf("StepsPerformed = %d but log has %d entries", report.StepsPerformed, len(report.Log))
	}
	if report.Rows != 4 {
		t.Errorf("Rows = %d, want 4", report.Rows)
	}
	if report.Cols != len(report.Columns) {
		t.Errorf("Cols = %d but Columns lists %d names", report.Cols, len(report.Columns))
	}
}

func TestQuietRunProducesNoLog(t *testing.T) {
	c := New(rawFixture(), false)
	c.CleanAll(0.9)
	if report := c.GetReport(); report.StepsPerformed != 0 {
		t.Errorf("quiet run logged %d steps", report.StepsPerformed)
	}
}
