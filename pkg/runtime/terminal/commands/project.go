package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/services/ingest"
)

// ProjectFlags locate and configure the project tree every command ingests.
type ProjectFlags struct {
	Root       string
	StartYear  int
	ConfigPath string
}

func (f *ProjectFlags) Bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.Root, "root", ".", "Project root containing Model/, Production/ and Storage/")
	cmd.PersistentFlags().IntVar(&f.StartYear, "start-year", 0, "First calendar year of the project (overrides the config)")
	cmd.PersistentFlags().StringVar(&f.ConfigPath, "config", "", "Path to an ingestion config file")
}

// Name is the project name shown in reports: the root directory's base name.
func (f *ProjectFlags) Name() string {
	abs, err := filepath.Abs(f.Root)
	if err != nil {
		return filepath.Base(f.Root)
	}
	return filepath.Base(abs)
}

func (f *ProjectFlags) Load(ctx context.Context) (*domain.ResultSet, error) {
	cfg, err := config.LoadConfig(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	if f.StartYear != 0 {
		cfg.StartYear = f.StartYear
	}

	rs, err := ingest.Ingest(ctx, f.Root, *cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s: %w", f.Root, err)
	}
	return rs, nil
}
