package api

import "time"

type Project struct {
	Name string `json:"name"`
}

type Metadata struct {
	StartYear             int     `json:"start_year"`
	LifetimeYears         float64 `json:"lifetime_years"`
	Years                 int     `json:"years"`
	SamplingIntervalHours float64 `json:"sampling_interval_hours"`
}

type KPIs struct {
	LifetimeYears             float64 `json:"lifetime_years"`
	NetPresentCost            float64 `json:"net_present_cost"`
	LevelizedCostOfEnergy     float64 `json:"levelized_cost_of_energy"`
	RenewableFraction         float64 `json:"renewable_fraction_pct"`
	TotalDispatchAndDischarge float64 `json:"total_dispatch_and_discharge"`
	TotalFuelConsumed         float64 `json:"total_fuel_consumed"`
}

type Issue struct {
	Category string `json:"category,omitempty"`
	Asset    string `json:"asset,omitempty"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

type ProjectOverview struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Metadata          Metadata            `json:"metadata"`
	KPIs              KPIs                `json:"kpis"`
	Architecture      map[string][]string `json:"architecture"`
	HasOperationModes bool                `json:"has_operation_modes"`
	Issues            []Issue             `json:"issues"`
}

type OperationModeRow struct {
	Year        int                `json:"year"`
	Hours       map[string]float64 `json:"hours"`
	Percentages map[string]float64 `json:"percentages"`
}

type OperationModeSummary struct {
	Modes []string           `json:"modes"`
	Rows  []OperationModeRow `json:"rows"`
}

type ProjectSections struct {
	Summary   string `json:"summary"`
	Results   string `json:"results"`
	Emissions string `json:"emissions"`
}

type Asset struct {
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	HasSeries bool     `json:"has_series"`
	HasReport bool     `json:"has_report"`
	Columns   []string `json:"columns"`
	Specs     string   `json:"specs"`
	Results   string   `json:"results"`
	Emissions string   `json:"emissions,omitempty"`
}

type SeriesColumn struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type Series struct {
	Time    []time.Time    `json:"time"`
	Columns []SeriesColumn `json:"columns"`
}
