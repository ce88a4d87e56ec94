// categorical_test.go
package cleaner

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func stringFrame(col string, values ...string) dataframe.DataFrame {
	records := [][]string{{col}}
	for _, v := range values {
		records = append(records, []string{v})
	}
	return dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

func TestCleanSexColumn(t *testing.T) {
	df := stringFrame("Sex", "M", "male", " F ", "female", "N", ".", "lli", "NaN")
	got := New(df, false).CleanSexColumn().DataFrame().Col("Sex")

	want := []string{"M", "M", "F", "F", "NaN", "NaN", "NaN", "NaN"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}

	for _, v := range uniqueValues(got) {
		if v != "M" && v != "F" {
			t.Errorf("value %q escaped the {M, F} domain", v)
		}
	}
}

func TestCleanFatalColumn(t *testing.T) {
	df := stringFrame("Fatal Y/N", "Y", "n", "yes", "NO", "F", "M", "2017", "UNKNOWN")
	got := New(df, false).CleanFatalColumn().DataFrame().Col("Fatal Y/N")

	// "F" means Fatal here, not Female.
	want := []string{"Y", "N", "Y", "N", "Y", "NaN", "NaN", "NaN"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}
}

func TestCleanTypeColumn(t *testing.T) {
	df := stringFrame("Type", "Unprovoked", " Provoked ", "Invalid", "questionable", "Boat")
	got := New(df, false).CleanTypeColumn().DataFrame().Col("Type")

	want := []string{"Unprovoked", "Provoked", "NaN", "NaN", "Boat"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}
}

func TestCleanCountryColumn(t *testing.T) {
	df := stringFrame("Country", " usa ", "United States", "england", "Scotland", "RSA", "brazil", "nan")
	got := New(df, false).CleanCountryColumn().DataFrame().Col("Country")

	want := []string{"USA", "USA", "UNITED KINGDOM", "UNITED KINGDOM", "SOUTH AFRICA", "BRAZIL", "NaN"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}
}

func TestCleanActivityColumn(t *testing.T) {
	df := stringFrame("Activity", "surfing", "SWIMMING", " spear fishing ", "nan")
	got := New(df, false).CleanActivityColumn().DataFrame().Col("Activity")

	want := []string{"Surfing", "Swimming", "Spear Fishing", "NaN"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}
}

func TestSpeciesColumn(t *testing.T) {
	if col, ok := SpeciesColumn([]string{"Date", "Species ", "Country"}); !ok || col != "Species " {
		t.Errorf("trailing-space variant: got (%q, %v)", col, ok)
	}
	if col, ok := SpeciesColumn([]string{"Date", "Species"}); !ok || col != "Species" {
		t.Errorf("plain variant: got (%q, %v)", col, ok)
	}
	if _, ok := SpeciesColumn([]string{"Date", "Country"}); ok {
		t.Error("absent column reported as present")
	}
}

func TestCleanSpeciesColumn(t *testing.T) {
	df := stringFrame("Species ", "White shark", "Great white shark", "Tiger shark", "Invalid", "Shark involvement not confirmed", "Mako shark")
	got := New(df, false).CleanSpeciesColumn().DataFrame().Col("Species ")

	want := []string{"White Shark", "White Shark", "Tiger Shark", "NaN", "NaN", "Mako shark"}
	for i, w := range want {
		if got.Elem(i).String() != w {
			t.Errorf("row %d = %q, want %q", i, got.Elem(i).String(), w)
		}
	}
}

func TestCategoricalStepsSkipMissingColumns(t *testing.T) {
	df := stringFrame("Location", "somewhere")
	c := New(df, false)
	c.CleanSexColumn().CleanFatalColumn().CleanTypeColumn().CleanCountryColumn().CleanActivityColumn().CleanSpeciesColumn()

	if c.DataFrame().Nrow() != 1 || c.DataFrame().Ncol() != 1 {
		t.Errorf("steps mutated a table without their columns: %dx%d", c.DataFrame().Nrow(), c.DataFrame().Ncol())
	}
}
