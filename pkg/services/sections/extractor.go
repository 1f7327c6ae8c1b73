// Package sections extracts named sections and labelled KPIs from the
// Markdown-like summary reports written next to every result series.
//
// Sections are located by literal delimiter pairs. Each extraction is
// independent: the first start marker wins and the end marker is searched
// only after it.
package sections

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

const (
	NameSummary   = "summary"
	NameSpecs     = "specs"
	NameResults   = "results"
	NameEmissions = "emissions"
)

const (
	runSeparator   = "-------"
	resultsHeading = "## Results"
	co2Label       = "Total Carbon Dioxide"
	blankLine      = "\n\n"
)

type Rule struct {
	Name        string
	Start       string
	End         string
	KeepStart   bool // include the start marker in the section
	UntilEOF    bool // a missing end marker extends the section to the end of the text
	Placeholder string
}

var (
	ProjectSummary = Rule{
		Name:        NameSummary,
		Start:       "# Model Summary Results",
		End:         resultsHeading,
		Placeholder: "No Model Summary!",
	}
	ProjectResults = Rule{
		Name:        NameResults,
		Start:       resultsHeading,
		End:         co2Label,
		Placeholder: "No Results Summary!",
	}
	ProjectEmissions = Rule{
		Name:        NameEmissions,
		Start:       co2Label,
		End:         blankLine,
		KeepStart:   true,
		UntilEOF:    true,
		Placeholder: "No Emission Results!",
	}

	AssetSpecs = Rule{
		Name:        NameSpecs,
		Start:       runSeparator,
		End:         resultsHeading,
		Placeholder: "No Specs Found!",
	}
	// AssetResults ends at the next run separator.
	AssetResults = Rule{
		Name:        NameResults,
		Start:       resultsHeading,
		End:         "-----",
		Placeholder: "No Results Found!",
	}
	// CombustionResults stops where the emissions block begins.
	CombustionResults = Rule{
		Name:        NameResults,
		Start:       resultsHeading,
		End:         co2Label,
		Placeholder: "No Results Found!",
	}
	CombustionEmissions = Rule{
		Name:        NameEmissions,
		Start:       co2Label,
		End:         blankLine,
		KeepStart:   true,
		UntilEOF:    true,
		Placeholder: "No Results Found!",
	}
)

// Extract returns the trimmed section selected by rule, or rule.Placeholder
// when either marker cannot be found.
func Extract(text string, rule Rule) (string, bool) {
	start := strings.Index(text, rule.Start)
	if start < 0 || rule.Start == "" {
		return rule.Placeholder, false
	}

	from := start + len(rule.Start)
	body := start
	if !rule.KeepStart {
		body = from
	}

	end := strings.Index(text[from:], rule.End)
	switch {
	case end >= 0 && rule.End != "":
		end += from
	case rule.UntilEOF:
		end = len(text)
	default:
		return rule.Placeholder, false
	}

	return strings.TrimSpace(text[body:end]), true
}

// ExtractAll applies every rule to text and returns the sections keyed by rule name.
func ExtractAll(text string, rules []Rule) map[string]string {
	out := make(map[string]string, len(rules))
	for _, r := range rules {
		out[r.Name], _ = Extract(text, r)
	}
	return out
}

// Placeholders returns the placeholder of every rule keyed by rule name.
func Placeholders(rules []Rule) map[string]string {
	out := make(map[string]string, len(rules))
	for _, r := range rules {
		out[r.Name] = r.Placeholder
	}
	return out
}

// ReadReport reads a report file. A missing file is reported as found=false with no error.
func ReadReport(path string) (string, bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(content), true, nil
}

// DemoteHeadings pushes every Markdown heading down by levels so a report can be
// nested under a caller's own heading.
func DemoteHeadings(text string, levels int) string {
	if levels <= 0 {
		return text
	}
	prefix := strings.Repeat("#", levels)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, "#")
		if trimmed != line && strings.HasPrefix(trimmed, " ") {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
