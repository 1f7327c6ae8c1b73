package assets

import (
	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/sections"
)

var (
	productionSchema = []string{
		"Production [kW]",
		"Dispatch [kW]",
		"Storage [kW]",
		"Curtailment [kW]",
	}
	storageSchema = []string{
		"Charging Power [kW]",
		"Discharging Power [kW]",
		"Charge (at end of timestep) [kWh]",
		"State of Health (at end of timestep) [ ]",
	}
)

// Descriptor drives loading of one asset category.
type Descriptor struct {
	Category domain.AssetCategory
	Dir      string   // category root relative to the project root
	Schema   []string // value columns kept, in order
	DropLast int      // trailing raw columns discarded first
	DropAt   []int    // raw positions discarded after DropLast
	Sections []sections.Rule
}

// HasSection reports whether the category's report defines the named section.
func (d Descriptor) HasSection(name string) bool {
	for _, r := range d.Sections {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Descriptors returns the descriptor of every category in presentation order,
// rooted at the given category directories.
func Descriptors(dirs map[domain.AssetCategory]string) []Descriptor {
	return []Descriptor{
		{
			Category: domain.CategoryCombustion,
			Dir:      dirs[domain.CategoryCombustion],
			Schema:   productionSchema,
			DropLast: 1,
			Sections: []sections.Rule{sections.AssetSpecs, sections.CombustionResults, sections.CombustionEmissions},
		},
		{
			Category: domain.CategoryNoncombustion,
			Dir:      dirs[domain.CategoryNoncombustion],
			Schema:   productionSchema,
			DropLast: 1,
			Sections: []sections.Rule{sections.AssetSpecs, sections.AssetResults},
		},
		{
			Category: domain.CategoryRenewable,
			Dir:      dirs[domain.CategoryRenewable],
			Schema:   productionSchema,
			DropLast: 1,
			// the first production-bearing raw column (after the source time column) is a raw input
			DropAt:   []int{1},
			Sections: []sections.Rule{sections.AssetSpecs, sections.AssetResults},
		},
		{
			Category: domain.CategoryStorage,
			Dir:      dirs[domain.CategoryStorage],
			Schema:   storageSchema,
			DropLast: 1,
			Sections: []sections.Rule{sections.AssetSpecs, sections.AssetResults},
		},
	}
}
