// Package testutil writes simulation output trees for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

const (
	SeriesFile = "time_series_results.csv"
	ReportFile = "summary_results.md"
	TimeHeader = "Time (since start of data) [hrs]"
)

var CategoryDirs = map[domain.AssetCategory]string{
	domain.CategoryCombustion:    filepath.Join("Production", "Combustion"),
	domain.CategoryNoncombustion: filepath.Join("Production", "Noncombustion"),
	domain.CategoryRenewable:     filepath.Join("Production", "Renewable"),
	domain.CategoryStorage:       "Storage",
}

var (
	ProductionHeader = []string{TimeHeader, "Production [kW]", "Dispatch [kW]", "Storage [kW]", "Curtailment [kW]", "Fuel Consumption [L]"}
	RenewableHeader  = []string{TimeHeader, "Resource [kW/m2]", "Production [kW]", "Dispatch [kW]", "Storage [kW]", "Curtailment [kW]"}
	StorageHeader    = []string{TimeHeader, "Charging Power [kW]", "Discharging Power [kW]", "Charge (at end of timestep) [kWh]", "State of Health (at end of timestep) [ ]"}
)

const ModelReport = `# Model Summary Results

--------

## Model Inputs

Years: 1.0
Timesteps: 8760

## Results

Net Present Cost: 2500000.75 CAD
Levellized Cost of Energy: 0.31234 CAD/kWh
Renewable Penetration: 0.625
Total Dispatch + Discharge: 120000 kWh
Total Fuel Consumed: 5000 L

Total Carbon Dioxide (CO2) Emissions: 13000 kg
Total Sulfur Oxides (SOx) Emissions: 4 kg
`

const CombustionReport = `# Diesel Summary Results

--------

## Specs

Capacity: 300 kW

## Results

Total Production: 1000 kWh

Total Carbon Dioxide (CO2) Emissions: 5 kg
`

const AssetReport = `# Asset Summary Results

--------

## Specs

Capacity: 250 kW

## Results

Total Production: 750 kWh

--------
`

// Project is a simulation output tree rooted in a temporary directory.
type Project struct {
	t    testing.TB
	Root string
}

func NewProject(t testing.TB) *Project {
	t.Helper()
	return &Project{t: t, Root: t.TempDir()}
}

// WriteModel writes the primary series with rows rows. Operation mode A is set
// on even rows and B on odd rows when withModes is true.
func (p *Project) WriteModel(rows int, withModes bool) *Project {
	p.t.Helper()
	header := []string{TimeHeader, "Electrical Load [kW]", "Net Load [kW]", "Total Dispatch [kW]"}
	if withModes {
		header = append(header, "Operation Mode A", "Operation Mode B")
	}
	p.writeCSV(filepath.Join(p.Root, "Model", SeriesFile), header, rows, func(row, col int) float64 {
		switch header[col] {
		case "Operation Mode A":
			return float64((row + 1) % 2)
		case "Operation Mode B":
			return float64(row % 2)
		default:
			return float64(row%24) * float64(col)
		}
	})
	return p
}

func (p *Project) WriteModelReport(text string) *Project {
	p.t.Helper()
	p.writeFile(filepath.Join(p.Root, "Model", ReportFile), text)
	return p
}

// AddAssetSeries writes an asset series file where every value column holds row*col.
func (p *Project) AddAssetSeries(category domain.AssetCategory, name string, header []string, rows int) *Project {
	p.t.Helper()
	p.writeCSV(filepath.Join(p.AssetDir(category, name), SeriesFile), header, rows, func(row, col int) float64 {
		return float64(row * col)
	})
	return p
}

func (p *Project) AddAssetReport(category domain.AssetCategory, name, text string) *Project {
	p.t.Helper()
	p.writeFile(filepath.Join(p.AssetDir(category, name), ReportFile), text)
	return p
}

// AddAssetFolder creates an empty asset folder.
func (p *Project) AddAssetFolder(category domain.AssetCategory, name string) *Project {
	p.t.Helper()
	if err := os.MkdirAll(p.AssetDir(category, name), 0o755); err != nil {
		p.t.Fatalf("failed to create asset folder: %v", err)
	}
	return p
}

func (p *Project) AssetDir(category domain.AssetCategory, name string) string {
	return filepath.Join(p.Root, CategoryDirs[category], name)
}

// writeCSV writes header plus rows records. Every line ends with a trailing
// comma, like the simulation engine's writer, and the first column counts hours.
func (p *Project) writeCSV(path string, header []string, rows int, value func(row, col int) float64) {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString(",\n")
	for row := 0; row < rows; row++ {
		fmt.Fprintf(&b, "%d", row)
		for col := 1; col < len(header); col++ {
			fmt.Fprintf(&b, ",%g", value(row, col))
		}
		b.WriteString(",\n")
	}
	p.writeFile(path, b.String())
}

func (p *Project) writeFile(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		p.t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		p.t.Fatalf("failed to write %s: %v", path, err)
	}
}
