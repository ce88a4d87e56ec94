// charts.go
package visualization

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"sharkwatch/src/analysis"
)

// Charts are purely presentational: every function takes an aggregate result
// and a target path and writes a PNG. Nothing here affects the cleaned data.

func savePlot(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

func barChart(title, xLabel, yLabel string, labels []string, values []float64, colorIdx int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(25))
	if err != nil {
		return nil, fmt.Errorf("build bar chart: %w", err)
	}
	bars.Color = plotutil.Color(colorIdx)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return p, nil
}

func splitCounts(vc []analysis.ValueCount) ([]string, []float64) {
	labels := make([]string, len(vc))
	values := make([]float64, len(vc))
	for i, c := range vc {
		labels[i] = c.Value
		values[i] = float64(c.Count)
	}
	return labels, values
}

// PlotTopCountries renders the attack counts of the leading countries.
func PlotTopCountries(h analysis.GeographicHotspots, path string) error {
	labels, values := splitCounts(h.TopCountries)
	title := fmt.Sprintf("Top %d Countries by Shark Attacks (top 3 = %.1f%%)", len(labels), h.Top3Percentage)
	p, err := barChart(title, "Country", "Number of Attacks", labels, values, 0)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}

// PlotTopActivities renders the attack counts of the leading activities.
func PlotTopActivities(a analysis.ActivityRisk, path string) error {
	labels, values := splitCounts(a.TopActivities)
	title := fmt.Sprintf("Top Activities During Shark Attacks (surfing+swimming = %.1f%%)", a.SurfingSwimmingPct)
	p, err := barChart(title, "Activity", "Number of Attacks", labels, values, 1)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}

// PlotGender renders the sex split alongside the fatality rate per sex.
func PlotGender(g analysis.GenderDisparity, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Shark Attacks by Sex (M:F ratio %.1f:1)", g.Ratio)
	p.Y.Label.Text = "Count / Fatality Rate (%)"
	p.Add(plotter.NewGrid())

	counts, err := plotter.NewBarChart(plotter.Values{float64(g.MaleCount), float64(g.FemaleCount)}, vg.Points(25))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	counts.Color = plotutil.Color(0)
	counts.Offset = -vg.Points(14)

	rates, err := plotter.NewBarChart(plotter.Values{g.FatalityBySex["M"], g.FatalityBySex["F"]}, vg.Points(25))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	rates.Color = plotutil.Color(3)
	rates.Offset = vg.Points(14)

	p.Add(counts, rates)
	p.Legend.Add("attacks", counts)
	p.Legend.Add("fatality rate %", rates)
	p.Legend.Top = true
	p.NominalX("Male", "Female")

	return savePlot(p, path)
}

// PlotAttacksByDecade renders the decade histogram of the temporal analysis.
func PlotAttacksByDecade(t analysis.TemporalTrends, path string) error {
	labels := make([]string, len(t.AttacksByDecade))
	values := make([]float64, len(t.AttacksByDecade))
	for i, d := range t.AttacksByDecade {
		labels[i] = fmt.Sprintf("%ds", d.Year)
		values[i] = float64(d.Count)
	}
	title := fmt.Sprintf("Shark Attacks by Decade (%.0f%% change early vs recent)", t.IncreasePct)
	p, err := barChart(title, "Decade", "Number of Attacks", labels, values, 2)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}

// PlotRecentTrend renders the year-by-year attack counts as a line.
func PlotRecentTrend(t analysis.TemporalTrends, path string) error {
	p := plot.New()
	p.Title.Text = "Shark Attacks Trend (Recent 50 Years)"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Attacks"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(t.AttacksByYear))
	for i, yc := range t.AttacksByYear {
		pts[i].X = float64(yc.Year)
		pts[i].Y = float64(yc.Count)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build line chart: %w", err)
	}
	line.Color = plotutil.Color(3)
	line.Width = vg.Points(2)
	p.Add(line)

	return savePlot(p, path)
}

// PlotSpecies renders the attack counts of the most reported species.
func PlotSpecies(species []analysis.ValueCount, path string) error {
	labels, values := splitCounts(species)
	p, err := barChart("Top Shark Species Involved in Attacks", "Species", "Number of Attacks", labels, values, 4)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}

// PlotAgeHistogram renders the victim age distribution with mean and median
// markers.
func PlotAgeHistogram(a analysis.AgeDistribution, path string) error {
	p := plot.New()
	p.Title.Text = "Age Distribution of Shark Attack Victims"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())

	hist, err := plotter.NewHist(plotter.Values(a.Ages), 30)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	hist.FillColor = plotutil.Color(0)
	p.Add(hist)

	top := maxBinCount(a.Ages, 30)
	for i, marker := range []struct {
		label string
		value float64
	}{
		{fmt.Sprintf("mean %.1f", a.Mean), a.Mean},
		{fmt.Sprintf("median %.1f", a.Median), a.Median},
	} {
		line, err := plotter.NewLine(plotter.XYs{{X: marker.value, Y: 0}, {X: marker.value, Y: top}})
		if err != nil {
			return fmt.Errorf("build marker line: %w", err)
		}
		line.Color = plotutil.Color(i + 1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(marker.label, line)
	}
	p.Legend.Top = true

	return savePlot(p, path)
}

// maxBinCount sizes the vertical marker lines to the tallest histogram bin.
func maxBinCount(values []float64, bins int) float64 {
	if len(values) == 0 || bins <= 0 {
		return 0
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return float64(len(values))
	}
	counts := make([]int, bins)
	width := (max - min) / float64(bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	return float64(top)
}

// PlotFatalityByCountry renders the per-country fatality rate of the
// fatality analysis.
func PlotFatalityByCountry(f analysis.FatalityRates, path string) error {
	labels := make([]string, len(f.FatalityByCountry))
	values := make([]float64, len(f.FatalityByCountry))
	for i, cr := range f.FatalityByCountry {
		labels[i] = cr.Country
		values[i] = cr.Rate
	}
	title := fmt.Sprintf("Fatality Rate by Country (overall %.1f%%)", f.OverallRate)
	p, err := barChart(title, "Country", "Fatality Rate (%)", labels, values, 5)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}

// PlotRiskScores renders the surf risk score ranking, lowest (safest) first.
func PlotRiskScores(risks []analysis.CountryRisk, path string) error {
	labels := make([]string, len(risks))
	values := make([]float64, len(risks))
	for i, r := range risks {
		labels[i] = r.Country
		values[i] = r.RiskScore
	}
	p, err := barChart("Surf Location Risk Score by Country (lower = safer)", "Country", "Risk Score", labels, values, 6)
	if err != nil {
		return err
	}
	return savePlot(p, path)
}
