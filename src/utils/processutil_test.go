package utils

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func TestContains(t *testing.T) {
	if !Contains([]string{"a", "b"}, "b") {
		t.Error("expected hit")
	}
	if Contains([]string{"a", "b"}, "c") {
		t.Error("expected miss")
	}
	if !Contains([]int{1, 2, 3}, 2) {
		t.Error("expected hit for ints")
	}
}

func TestHasColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"USA"}, series.String, "Country"),
		series.New([]string{"Surfing"}, series.String, "Activity"),
	)

	if !HasColumn(df, "Country") {
		t.Error("Country should be present")
	}
	if HasColumn(df, "country") {
		t.Error("lookup must be case sensitive")
	}
	if HasColumn(df, "Species") {
		t.Error("Species should be absent")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0},  // stored just below 1.005
		{2.675, 2.67}, // stored just below 2.675
		{50.0, 50.0},
		{33.333333, 33.33},
		{-1.235, -1.23},
	}
	for _, tc := range tests {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
