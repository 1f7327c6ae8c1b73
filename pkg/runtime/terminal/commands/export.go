package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/services/export"
	"github.com/de-tools/result-atlas/pkg/store/duckdb"
	"github.com/de-tools/result-atlas/pkg/store/duckdb/series"
)

type ExportCmd struct {
	project *ProjectFlags
	dbPath  string
	name    string
	list    bool
}

func NewExportCmd(project *ProjectFlags) *cobra.Command {
	ec := &ExportCmd{project: project}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Store the ingested series in a DuckDB database",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.dbPath, "db", "result-atlas.db", "DuckDB database file")
	cmd.Flags().StringVar(&ec.name, "name", "", "Project name recorded with the ingestion (default: root directory name)")
	cmd.Flags().BoolVar(&ec.list, "list", false, "List the ingestions already exported for the project instead of exporting")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	name := ec.name
	if name == "" {
		name = ec.project.Name()
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ec.dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := series.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create series store: %w", err)
	}
	exporter := export.NewExporter(db, store)

	if ec.list {
		return ec.printHistory(cmd, exporter, name)
	}

	rs, err := ec.project.Load(ctx)
	if err != nil {
		return err
	}

	written, err := exporter.Export(ctx, name, rs)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d points of ingestion %s to %s\n", written, rs.ID, ec.dbPath)
	return nil
}

func (ec *ExportCmd) printHistory(cmd *cobra.Command, exporter *export.Exporter, name string) error {
	ingestions, err := exporter.History(cmd.Context(), name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(ingestions) == 0 {
		fmt.Fprintf(out, "No ingestions of %s in %s\n", name, ec.dbPath)
		return nil
	}
	for _, in := range ingestions {
		fmt.Fprintf(out, "%s  %s  start %d  %d years  %s\n",
			in.ID, in.IngestedAt.UTC().Format(time.RFC3339), in.StartYear, in.Years, in.Root)
	}
	return nil
}
