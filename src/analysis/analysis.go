// analysis.go
package analysis

import (
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"sharkwatch/src/cleaner"
	"sharkwatch/src/utils"
)

// ValueCount is one row of a value_counts-style tally, most frequent first.
type ValueCount struct {
	Value string
	Count int
}

type GeographicHotspots struct {
	TopCountries   []ValueCount
	Top3Percentage float64
	Top3Countries  []string
}

type ActivityRisk struct {
	TopActivities      []ValueCount
	SurfingSwimmingPct float64
	SurfingCount       int
	SwimmingCount      int
}

type GenderDisparity struct {
	GenderCounts  []ValueCount
	MaleCount     int
	FemaleCount   int
	Ratio         float64
	FatalityBySex map[string]float64
}

type YearCount struct {
	Year  int
	Count int
}

type TemporalTrends struct {
	AttacksByDecade []YearCount
	AttacksByYear   []YearCount
	EarlyAvg        float64
	RecentAvg       float64
	IncreasePct     float64
}

type AgeDistribution struct {
	Ages   []float64
	Count  int
	Mean   float64
	Median float64
	Mode   float64
	StdDev float64
	Min    float64
	Max    float64
}

type CountryRate struct {
	Country string
	Rate    float64
}

type FatalityRates struct {
	FatalCounts       []ValueCount
	OverallRate       float64
	FatalityByCountry []CountryRate
}

type Summary struct {
	TotalAttacks        int
	MinYear             int
	MaxYear             int
	CountriesCount      int
	ActivitiesCount     int
	AvgAge              float64
	MedianAge           float64
	OverallFatalityRate float64
}

// Insights bundles every hypothesis result in a single pass.
type Insights struct {
	Geographic GeographicHotspots
	Activity   ActivityRisk
	Gender     GenderDisparity
	Temporal   TemporalTrends
	Summary    Summary
}

// valueCounts tallies the non-missing values of a column, sorted by count
// descending with value as the tiebreaker.
func valueCounts(s series.Series) []ValueCount {
	counts := make(map[string]int)
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		counts[el.String()]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func head(vc []ValueCount, n int) []ValueCount {
	if n > len(vc) {
		n = len(vc)
	}
	return vc[:n]
}

// containsFold builds a row filter matching case-insensitive substrings,
// with missing values never matching.
func containsFold(substr string) func(series.Element) bool {
	substr = strings.ToLower(substr)
	return func(el series.Element) bool {
		if el.IsNA() {
			return false
		}
		return strings.Contains(strings.ToLower(el.String()), substr)
	}
}

func countMatching(df dataframe.DataFrame, col, substr string) int {
	return df.Filter(dataframe.F{
		Colname:    col,
		Comparator: series.CompFunc,
		Comparando: containsFold(substr),
	}).Nrow()
}

// AnalyzeGeographicHotspots ranks countries by attack count and measures how
// concentrated the top three are.
func AnalyzeGeographicHotspots(df dataframe.DataFrame, topN int) GeographicHotspots {
	counts := valueCounts(df.Col("Country"))
	top := head(counts, topN)

	top3 := head(counts, 3)
	top3Total := 0
	var top3Names []string
	for _, vc := range top3 {
		top3Total += vc.Count
		top3Names = append(top3Names, vc.Value)
	}

	pct := 0.0
	if df.Nrow() > 0 {
		pct = float64(top3Total) / float64(df.Nrow()) * 100
	}

	return GeographicHotspots{
		TopCountries:   top,
		Top3Percentage: pct,
		Top3Countries:  top3Names,
	}
}

// AnalyzeActivityRisk ranks activities and measures the surfing/swimming
// share via substring matching on the free-text Activity column.
func AnalyzeActivityRisk(df dataframe.DataFrame, topN int) ActivityRisk {
	surfing := countMatching(df, "Activity", "surfing")
	swimming := countMatching(df, "Activity", "swimming")

	either := df.Filter(
		dataframe.F{Colname: "Activity", Comparator: series.CompFunc, Comparando: containsFold("surfing")},
		dataframe.F{Colname: "Activity", Comparator: series.CompFunc, Comparando: containsFold("swimming")},
	).Nrow()

	pct := 0.0
	if df.Nrow() > 0 {
		pct = float64(either) / float64(df.Nrow()) * 100
	}

	return ActivityRisk{
		TopActivities:      head(valueCounts(df.Col("Activity")), topN),
		SurfingSwimmingPct: pct,
		SurfingCount:       surfing,
		SwimmingCount:      swimming,
	}
}

// AnalyzeGenderDisparity measures the sex split and the fatality rate
// within each sex.
func AnalyzeGenderDisparity(df dataframe.DataFrame) GenderDisparity {
	counts := valueCounts(df.Col("Sex"))

	male, female := 0, 0
	for _, vc := range counts {
		switch vc.Value {
		case "M":
			male = vc.Count
		case "F":
			female = vc.Count
		}
	}

	ratio := 0.0
	if female > 0 {
		ratio = float64(male) / float64(female)
	}

	bySex := make(map[string]float64)
	for _, sex := range []string{"M", "F"} {
		group := df.Filter(dataframe.F{Colname: "Sex", Comparator: series.Eq, Comparando: sex})
		if group.Nrow() == 0 {
			continue
		}
		fatal := group.Filter(dataframe.F{Colname: "Fatal Y/N", Comparator: series.Eq, Comparando: "Y"}).Nrow()
		bySex[sex] = float64(fatal) / float64(group.Nrow()) * 100
	}

	return GenderDisparity{
		GenderCounts:  counts,
		MaleCount:     male,
		FemaleCount:   female,
		Ratio:         ratio,
		FatalityBySex: bySex,
	}
}

// AnalyzeTemporalTrends buckets attacks by decade and by year within the
// given bounds and compares the earliest five decades against the latest
// five.
func AnalyzeTemporalTrends(df dataframe.DataFrame, startYear, endYear int) TemporalTrends {
	inRange := df.Filter(
		dataframe.F{Colname: "Year", Comparator: series.GreaterEq, Comparando: startYear},
	).Filter(
		dataframe.F{Colname: "Year", Comparator: series.LessEq, Comparando: endYear},
	)

	years := inRange.Col("Year")
	decadeCounts := make(map[int]int)
	yearCounts := make(map[int]int)
	recentCutoff := endYear - 50
	for i := 0; i < years.Len(); i++ {
		y, err := years.Elem(i).Int()
		if err != nil {
			continue
		}
		decadeCounts[(y/10)*10]++
		if y >= recentCutoff {
			yearCounts[y]++
		}
	}

	byDecade := sortYearCounts(decadeCounts)
	byYear := sortYearCounts(yearCounts)

	earlyAvg, recentAvg, increase := 0.0, 0.0, 0.0
	if len(byDecade) >= 5 {
		earlyAvg = meanCounts(byDecade[:5])
		recentAvg = meanCounts(byDecade[len(byDecade)-5:])
		if earlyAvg > 0 {
			increase = (recentAvg - earlyAvg) / earlyAvg * 100
		}
	}

	return TemporalTrends{
		AttacksByDecade: byDecade,
		AttacksByYear:   byYear,
		EarlyAvg:        earlyAvg,
		RecentAvg:       recentAvg,
		IncreasePct:     increase,
	}
}

func sortYearCounts(m map[int]int) []YearCount {
	out := make([]YearCount, 0, len(m))
	for y, n := range m {
		out = append(out, YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func meanCounts(yc []YearCount) float64 {
	if len(yc) == 0 {
		return 0
	}
	sum := 0
	for _, c := range yc {
		sum += c.Count
	}
	return float64(sum) / float64(len(yc))
}

// AnalyzeSpecies ranks the species involved in attacks, tolerating the
// trailing-space column name variant of the GSAF export.
func AnalyzeSpecies(df dataframe.DataFrame, topN int) []ValueCount {
	col, ok := cleaner.SpeciesColumn(df.Names())
	if !ok {
		return nil
	}
	return head(valueCounts(df.Col(col)), topN)
}

// AnalyzeAgeDistribution summarizes victim ages over the rows where an age
// is present.
func AnalyzeAgeDistribution(df dataframe.DataFrame) AgeDistribution {
	s := df.Col("Age")
	var ages []float64
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		ages = append(ages, el.Float())
	}
	if len(ages) == 0 {
		return AgeDistribution{}
	}

	sorted := append([]float64(nil), ages...)
	sort.Float64s(sorted)

	mode, _ := stat.Mode(sorted, nil)

	return AgeDistribution{
		Ages:   ages,
		Count:  len(ages),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Mode:   mode,
		StdDev: stat.StdDev(sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// AnalyzeFatalityRates computes the overall fatality rate and the rate for
// each of the top-N countries by attack count, sorted by rate descending.
func AnalyzeFatalityRates(df dataframe.DataFrame, topNCountries int) FatalityRates {
	fatalCounts := valueCounts(df.Col("Fatal Y/N"))

	withData := 0
	fatal := 0
	for _, vc := range fatalCounts {
		withData += vc.Count
		if vc.Value == "Y" {
			fatal = vc.Count
		}
	}
	overall := 0.0
	if withData > 0 {
		overall = float64(fatal) / float64(withData) * 100
	}

	var byCountry []CountryRate
	for _, vc := range head(valueCounts(df.Col("Country")), topNCountries) {
		group := df.Filter(dataframe.F{Colname: "Country", Comparator: series.Eq, Comparando: vc.Value})
		if group.Nrow() == 0 {
			continue
		}
		y := group.Filter(dataframe.F{Colname: "Fatal Y/N", Comparator: series.Eq, Comparando: "Y"}).Nrow()
		byCountry = append(byCountry, CountryRate{
			Country: vc.Value,
			Rate:    float64(y) / float64(group.Nrow()) * 100,
		})
	}
	sort.Slice(byCountry, func(i, j int) bool {
		if byCountry[i].Rate != byCountry[j].Rate {
			return byCountry[i].Rate > byCountry[j].Rate
		}
		return byCountry[i].Country < byCountry[j].Country
	})

	return FatalityRates{
		FatalCounts:       fatalCounts,
		OverallRate:       overall,
		FatalityByCountry: byCountry,
	}
}

// GetSummaryStatistics computes the headline numbers for the whole dataset.
func GetSummaryStatistics(df dataframe.DataFrame) Summary {
	sum := Summary{TotalAttacks: df.Nrow()}

	if utils.HasColumn(df, "Year") {
		years := df.Col("Year")
		first := true
		for i := 0; i < years.Len(); i++ {
			y, err := years.Elem(i).Int()
			if err != nil {
				continue
			}
			if first || y < sum.MinYear {
				sum.MinYear = y
			}
			if first || y > sum.MaxYear {
				sum.MaxYear = y
			}
			first = false
		}
	}

	if utils.HasColumn(df, "Country") {
		sum.CountriesCount = len(valueCounts(df.Col("Country")))
	}
	if utils.HasColumn(df, "Activity") {
		sum.ActivitiesCount = len(valueCounts(df.Col("Activity")))
	}

	if utils.HasColumn(df, "Age") {
		ages := AnalyzeAgeDistribution(df)
		sum.AvgAge = ages.Mean
		sum.MedianAge = ages.Median
	}

	if utils.HasColumn(df, "Fatal Y/N") && df.Nrow() > 0 {
		y := df.Filter(dataframe.F{Colname: "Fatal Y/N", Comparator: series.Eq, Comparando: "Y"}).Nrow()
		sum.OverallFatalityRate = float64(y) / float64(df.Nrow()) * 100
	}

	return sum
}

// ValidateAllHypotheses runs every analysis in one call.
func ValidateAllHypotheses(df dataframe.DataFrame, topN, startYear, endYear int) Insights {
	return Insights{
		Geographic: AnalyzeGeographicHotspots(df, topN),
		Activity:   AnalyzeActivityRisk(df, topN),
		Gender:     AnalyzeGenderDisparity(df),
		Temporal:   AnalyzeTemporalTrends(df, startYear, endYear),
		Summary:    GetSummaryStatistics(df),
	}
}
