package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/adapters"
	"github.com/de-tools/result-atlas/pkg/runtime/terminal/export"
)

type SummaryCmd struct {
	project  *ProjectFlags
	reporter *export.Reporter
}

func NewSummaryCmd(project *ProjectFlags, reporter *export.Reporter) *cobra.Command {
	sc := &SummaryCmd{project: project, reporter: reporter}
	return &cobra.Command{
		Use:   "summary",
		Short: "Show project KPIs, architecture and yearly operation modes",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
}

func (sc *SummaryCmd) run(cmd *cobra.Command, _ []string) error {
	rs, err := sc.project.Load(cmd.Context())
	if err != nil {
		return err
	}
	return sc.reporter.Handle(adapters.MapResultSetDomainToReport(sc.project.Name(), rs))
}
