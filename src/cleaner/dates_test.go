// dates_test.go
package cleaner

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func TestParseIncidentDate(t *testing.T) {
	tests := []struct {
		date string
		year string
		want string
		ok   bool
	}{
		{"Reported 14th June", "1998", "1998-06-14", true},
		{"3 July", "2005", "2005-07-03", true},
		{"22nd  August", "2010", "2010-08-22", true},
		{"1st January", "2000", "2000-01-01", true},
		{"June", "1998", "", false},       // no day number
		{"14th June", "98.0", "", false},  // year is not a plain integer
		{"31st February", "1998", "", false},
		{"14th Smarch", "1998", "", false},
		{"", "1998", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseIncidentDate(tc.date, tc.year)
		if ok != tc.ok {
			t.Errorf("ParseIncidentDate(%q, %q) ok = %v, want %v", tc.date, tc.year, ok, tc.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tc.want {
			t.Errorf("ParseIncidentDate(%q, %q) = %s, want %s", tc.date, tc.year, got.Format("2006-01-02"), tc.want)
		}
	}
}

func TestParseDates(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Date", "Year"},
		{"Reported 14th June", "1998"},
		{"25 December", "2020"},
		{"Summer", "2001"},
		{"NaN", "1987"},
		{"4th May", "NaN"},
		{"10th March", "early 1900s"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	out := New(df, false).ParseDates().DataFrame()

	parsed := out.Col("Date_Parsed")
	want := []string{"1998-06-14", "2020-12-25", "NaN", "NaN", "NaN", "NaN"}
	for i, w := range want {
		if parsed.Elem(i).String() != w {
			t.Errorf("Date_Parsed row %d = %q, want %q", i, parsed.Elem(i).String(), w)
		}
	}

	years := out.Col("Year")
	if years.Type() != series.Int {
		t.Fatalf("Year type = %v, want %v", years.Type(), series.Int)
	}
	if y, err := years.Elem(0).Int(); err != nil || y != 1998 {
		t.Errorf("Year row 0 = (%d, %v), want 1998", y, err)
	}
	if !years.Elem(4).IsNA() {
		t.Error("missing Year should stay missing after coercion")
	}
	if !years.Elem(5).IsNA() {
		t.Error("non-numeric Year should become missing")
	}
}

func TestParseDatesWithoutDateColumn(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Year"},
		{"1998"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))

	out := New(df, false).ParseDates().DataFrame()

	for _, name := range out.Names() {
		if name == "Date_Parsed" {
			t.Fatal("Date_Parsed added without a Date column")
		}
	}
	if out.Col("Year").Type() != series.Int {
		t.Error("Year should be coerced even without a Date column")
	}
}
