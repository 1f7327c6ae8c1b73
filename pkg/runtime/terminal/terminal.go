package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/result-atlas/pkg/runtime/terminal/export"
)

// CLI represents the command-line interface
type CLI struct {
	project  *commands.ProjectFlags
	reporter *export.Reporter
	logger   zerolog.Logger
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Log receives contained ingestion warnings; nothing is logged when nil.
	Log io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	logger := zerolog.Nop()
	if opts.Log != nil {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: opts.Log}).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	}

	cli := &CLI{
		project:  &commands.ProjectFlags{},
		reporter: export.NewReporter(opts.Output),
		logger:   logger,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Explore the results of a grid-modelling simulation run",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.project.Bind(cmd)

	cmd.AddCommand(commands.NewSummaryCmd(cli.project, cli.reporter))
	cmd.AddCommand(commands.NewSectionsCmd(cli.project))
	cmd.AddCommand(commands.NewSliceCmd(cli.project))
	cmd.AddCommand(commands.NewExportCmd(cli.project))

	return cmd
}
