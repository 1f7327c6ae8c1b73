package sections

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/numeric"
)

type kpiPattern struct {
	label  string
	re     *regexp.Regexp
	scale  float64
	places int32 // -1 keeps full precision
	set    func(*domain.ProjectKPIs, float64)
}

var kpiPatterns = []kpiPattern{
	{
		label: "Years", re: regexp.MustCompile(`Years: (\S+)`), scale: 1, places: 1,
		set: func(k *domain.ProjectKPIs, v float64) { k.LifetimeYears = v },
	},
	{
		label: "Net Present Cost", re: regexp.MustCompile(`Net Present Cost: (\S+)`), scale: 1, places: -1,
		set: func(k *domain.ProjectKPIs, v float64) { k.NetPresentCost = v },
	},
	{
		label: "Levellized Cost of Energy", re: regexp.MustCompile(`Levellized Cost of Energy: (\S+)`), scale: 1, places: 4,
		set: func(k *domain.ProjectKPIs, v float64) { k.LevelizedCostOfEnergy = v },
	},
	{
		label: "Renewable Penetration", re: regexp.MustCompile(`Renewable Penetration: (\S+)`), scale: 100, places: 2,
		set: func(k *domain.ProjectKPIs, v float64) { k.RenewableFraction = v },
	},
	{
		label: "Dispatch and Discharge", re: regexp.MustCompile(` Discharge: (\S+)`), scale: 1, places: -1,
		set: func(k *domain.ProjectKPIs, v float64) { k.TotalDispatchAndDischarge = v },
	},
	{
		label: "Total Fuel Consumed", re: regexp.MustCompile(`Total Fuel Consumed: (\S+)`), scale: 1, places: -1,
		set: func(k *domain.ProjectKPIs, v float64) { k.TotalFuelConsumed = v },
	},
}

// ExtractKPIs reads the scalar project KPIs from the primary report.
// A KPI whose label is missing or whose value does not parse stays 0 and is
// reported in the returned error slice, each wrapping domain.ErrKPIParse.
func ExtractKPIs(text string) (domain.ProjectKPIs, []error) {
	var (
		kpis domain.ProjectKPIs
		errs []error
	)
	for _, p := range kpiPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrKPIParse, p.label))
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q value %q", domain.ErrKPIParse, p.label, m[1]))
			continue
		}
		p.set(&kpis, round(v*p.scale, p.places))
	}
	return kpis, errs
}

func round(v float64, places int32) float64 {
	if places < 0 {
		return v
	}
	return numeric.Round(v, places)
}
