package commands

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/query"
)

type SliceCmd struct {
	project *ProjectFlags
	stream  string
	asset   string
	year    int
	from    int
	to      int
	columns []string
}

func NewSliceCmd(project *ProjectFlags) *cobra.Command {
	sc := &SliceCmd{project: project}
	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Write one year (or an hour range of it) of a series as CSV",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.stream, "stream", string(query.StreamModel), "Series to slice: model or operation-modes")
	cmd.Flags().StringVar(&sc.asset, "asset", "", "Slice an asset series instead, as <category>/<name>")
	cmd.Flags().IntVar(&sc.year, "year", 0, "0-based project year")
	cmd.Flags().IntVar(&sc.from, "from", 0, "First hour of the year (inclusive)")
	cmd.Flags().IntVar(&sc.to, "to", domain.HoursPerYear, "Last hour of the year (inclusive)")
	cmd.Flags().StringSliceVar(&sc.columns, "columns", nil, "Columns to keep, in order; all when empty")

	return cmd
}

func (sc *SliceCmd) target() (query.Target, error) {
	if sc.asset == "" {
		stream, err := query.ParseStream(sc.stream)
		if err != nil {
			return query.Target{}, err
		}
		return query.Target{Stream: stream}, nil
	}

	category, name, ok := strings.Cut(sc.asset, "/")
	if !ok {
		return query.Target{}, fmt.Errorf("invalid asset %q, expected <category>/<name>", sc.asset)
	}
	c, err := domain.ParseAssetCategory(category)
	if err != nil {
		return query.Target{}, err
	}
	return query.AssetTarget(c, name), nil
}

func (sc *SliceCmd) run(cmd *cobra.Command, _ []string) error {
	target, err := sc.target()
	if err != nil {
		return err
	}

	req := query.Request{Year: sc.year, Columns: sc.columns}
	if cmd.Flags().Changed("from") {
		req.From = &sc.from
	}
	if cmd.Flags().Changed("to") {
		req.To = &sc.to
	}

	rs, err := sc.project.Load(cmd.Context())
	if err != nil {
		return err
	}
	s, err := query.Resolve(rs, target)
	if err != nil {
		return err
	}
	view, err := req.Apply(s)
	if err != nil {
		return err
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write(append([]string{"time"}, view.ColumnNames()...)); err != nil {
		return err
	}
	record := make([]string, len(view.Columns)+1)
	for row, ts := range view.Time {
		record[0] = ts.Format(time.RFC3339)
		for i, c := range view.Columns {
			record[i+1] = strconv.FormatFloat(c.Values[row], 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
