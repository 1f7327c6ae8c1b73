package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/sections"
)

type SectionsCmd struct {
	project *ProjectFlags
	asset   string
	plain   bool
	width   int
}

func NewSectionsCmd(project *ProjectFlags) *cobra.Command {
	sc := &SectionsCmd{project: project}
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Print the report sections of the project or of one asset",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.asset, "asset", "", "Asset as <category>/<name>; all assets when empty")
	cmd.Flags().BoolVar(&sc.plain, "plain", false, "Print raw Markdown instead of rendering it")
	cmd.Flags().IntVar(&sc.width, "width", 80, "Word wrap width of rendered output")

	return cmd
}

func (sc *SectionsCmd) run(cmd *cobra.Command, _ []string) error {
	rs, err := sc.project.Load(cmd.Context())
	if err != nil {
		return err
	}

	var doc string
	if sc.asset != "" {
		category, name, ok := strings.Cut(sc.asset, "/")
		if !ok {
			return fmt.Errorf("invalid asset %q, expected <category>/<name>", sc.asset)
		}
		c, err := domain.ParseAssetCategory(category)
		if err != nil {
			return err
		}
		asset, err := rs.Asset(c, name)
		if err != nil {
			return err
		}
		doc = assetMarkdown(asset)
	} else {
		doc = projectMarkdown(sc.project.Name(), rs)
	}

	if sc.plain {
		_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(sc.width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("failed to render sections: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func projectMarkdown(name string, rs *domain.ResultSet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "## Model Summary\n\n%s\n\n", sections.DemoteHeadings(rs.Sections.Summary, 1))
	fmt.Fprintf(&b, "## Results\n\n%s\n\n", sections.DemoteHeadings(rs.Sections.Results, 1))
	fmt.Fprintf(&b, "## Emissions\n\n%s\n\n", rs.Sections.Emissions)

	arch := rs.Architecture()
	for _, c := range domain.Categories() {
		for _, name := range arch[c] {
			asset, _ := rs.Asset(c, name)
			b.WriteString(sections.DemoteHeadings(assetMarkdown(asset), 1))
		}
	}
	return b.String()
}

func assetMarkdown(asset domain.AssetResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", asset.Name, asset.Category)
	fmt.Fprintf(&b, "## Specs\n\n%s\n\n", sections.DemoteHeadings(asset.SpecText, 2))
	fmt.Fprintf(&b, "## Results\n\n%s\n\n", sections.DemoteHeadings(asset.ResultsText, 2))
	if asset.Category == domain.CategoryCombustion {
		fmt.Fprintf(&b, "## Emissions\n\n%s\n\n", asset.EmissionsText)
	}
	return b.String()
}
