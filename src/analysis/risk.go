// risk.go
package analysis

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"sharkwatch/src/utils"
)

// CountryRisk scores the relative danger of surfing in one country. Lower
// scores are safer.
type CountryRisk struct {
	Country      string
	AttackCount  int
	FatalityRate float64
	RiskScore    float64
}

// CalculateSurfRiskScore ranks countries by a composite surf risk score:
// the attack count normalized against the busiest surviving country (scaled
// to 50 points) plus the fatality rate in percent. Countries with fewer than
// minAttacks surf incidents are dropped for statistical relevance. Results
// are sorted ascending by score.
func CalculateSurfRiskScore(df dataframe.DataFrame, minAttacks int) []CountryRisk {
	if !utils.HasColumn(df, "Activity") || !utils.HasColumn(df, "Country") || !utils.HasColumn(df, "Fatal Y/N") {
		return nil
	}

	surf := df.Filter(dataframe.F{
		Colname:    "Activity",
		Comparator: series.CompFunc,
		Comparando: containsFold("surf"),
	})

	countries := surf.Col("Country")
	fatals := surf.Col("Fatal Y/N")

	attacks := make(map[string]int)
	fatalCount := make(map[string]int)
	for i := 0; i < surf.Nrow(); i++ {
		c := countries.Elem(i)
		if c.IsNA() {
			continue
		}
		name := c.String()
		attacks[name]++
		if f := fatals.Elem(i); !f.IsNA() && f.String() == "Y" {
			fatalCount[name]++
		}
	}

	var scored []CountryRisk
	maxAttacks := 0
	for name, n := range attacks {
		if n < minAttacks {
			continue
		}
		scored = append(scored, CountryRisk{
			Country:      name,
			AttackCount:  n,
			FatalityRate: utils.Round2(float64(fatalCount[name]) / float64(n) * 100),
		})
		if n > maxAttacks {
			maxAttacks = n
		}
	}

	if maxAttacks > 0 {
		for i := range scored {
			normalized := float64(scored[i].AttackCount) / float64(maxAttacks) * 50
			scored[i].RiskScore = utils.Round2(normalized + scored[i].FatalityRate)
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].RiskScore != scored[j].RiskScore {
			return scored[i].RiskScore < scored[j].RiskScore
		}
		return scored[i].Country < scored[j].Country
	})

	return scored
}
