package domain

import (
	"fmt"
	"maps"
	"slices"
)

// HoursPerYear is the fixed number of hourly samples in one project year.
const HoursPerYear = 8760

type ProjectMetadata struct {
	StartYear             int
	LifetimeYears         float64 // primary row count / HoursPerYear
	Years                 int     // LifetimeYears rounded to whole years
	SamplingIntervalHours float64
}

type AssetResult struct {
	Category      AssetCategory
	Name          string
	Series        Series
	HasSeries     bool
	HasReport     bool
	SpecText      string
	ResultsText   string
	EmissionsText string // combustion only
}

type ModelResult struct {
	Dispatch          Series
	OperationModes    Series
	HasOperationModes bool
}

type YearlyOperationModeRow struct {
	Year        int // 1-based
	Hours       map[string]float64
	Percentages map[string]float64
}

type YearlyOperationModeSummary struct {
	Modes []string
	Rows  []YearlyOperationModeRow
}

type ProjectKPIs struct {
	LifetimeYears             float64
	NetPresentCost            float64
	LevelizedCostOfEnergy     float64
	RenewableFraction         float64 // percent
	TotalDispatchAndDischarge float64
	TotalFuelConsumed         float64
}

type ProjectSections struct {
	Summary   string
	Results   string
	Emissions string
}

// ResultSet is the immutable outcome of one ingestion pass over a project tree.
type ResultSet struct {
	ID             string
	Root           string
	Metadata       ProjectMetadata
	Axis           TimeAxis
	Model          ModelResult
	Assets         map[AssetCategory]map[string]AssetResult
	OperationModes YearlyOperationModeSummary
	KPIs           ProjectKPIs
	Sections       ProjectSections
	Issues         []IngestIssue
}

// Architecture lists the asset names of every category, sorted by name.
// Categories without assets map to an empty slice.
func (rs *ResultSet) Architecture() map[AssetCategory][]string {
	out := make(map[AssetCategory][]string, len(Categories()))
	for _, c := range Categories() {
		out[c] = slices.Sorted(maps.Keys(rs.Assets[c]))
		if out[c] == nil {
			out[c] = []string{}
		}
	}
	return out
}

func (rs *ResultSet) Asset(category AssetCategory, name string) (AssetResult, error) {
	asset, ok := rs.Assets[category][name]
	if !ok {
		return AssetResult{}, fmt.Errorf("%w: %s/%s", ErrUnknownAsset, category, name)
	}
	return asset, nil
}

// Validate checks that every series in the set, and every column of it, is
// aligned to the time axis.
func (rs *ResultSet) Validate() error {
	want := rs.Axis.Len()
	if err := validateSeries("model dispatch", rs.Model.Dispatch, want); err != nil {
		return err
	}
	if err := validateSeries("model operation modes", rs.Model.OperationModes, want); err != nil {
		return err
	}
	for _, c := range Categories() {
		for name, asset := range rs.Assets[c] {
			if err := validateSeries(fmt.Sprintf("%s/%s", c, name), asset.Series, want); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSeries(source string, s Series, want int) error {
	if got := s.Len(); got != want {
		return &AxisLengthMismatchError{Source: source, Got: got, Want: want}
	}
	for _, c := range s.Columns {
		if got := len(c.Values); got != want {
			return &AxisLengthMismatchError{Source: fmt.Sprintf("%s column %q", source, c.Name), Got: got, Want: want}
		}
	}
	return nil
}
