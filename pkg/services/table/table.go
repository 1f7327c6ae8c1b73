// Package table reads the row-oriented CSV files written by the simulation
// engine and projects them onto named numeric columns.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// Raw is an untyped CSV table: one header row plus string records.
type Raw struct {
	Source  string
	Header  []string
	Records [][]string
}

// ReadFile reads a CSV file. A missing file yields an error wrapping os.ErrNotExist.
func ReadFile(path string) (*Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	raw.Source = path
	return raw, nil
}

func Read(r io.Reader) (*Raw, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", domain.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTable, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedTable, err)
	}

	return &Raw{Header: header, Records: records}, nil
}

func (r *Raw) Len() int {
	return len(r.Records)
}

// DropLast removes the last n columns.
func (r *Raw) DropLast(n int) *Raw {
	if n <= 0 {
		return r
	}
	keep := len(r.Header) - n
	if keep < 0 {
		keep = 0
	}
	idx := make([]int, 0, n)
	for i := keep; i < len(r.Header); i++ {
		idx = append(idx, i)
	}
	return r.DropAt(idx...)
}

// DropAt removes the columns at the given raw positions. Out of range positions are ignored.
func (r *Raw) DropAt(positions ...int) *Raw {
	if len(positions) == 0 {
		return r
	}
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}

	out := &Raw{Source: r.Source, Header: filter(r.Header, drop), Records: make([][]string, len(r.Records))}
	for i, rec := range r.Records {
		out.Records[i] = filter(rec, drop)
	}
	return out
}

// Numeric parses the named columns in the requested order. NaN and infinite
// values are rejected as malformed.
// Names absent from the header are reported together in a SchemaMismatchError.
func (r *Raw) Numeric(names []string) ([]domain.Column, error) {
	positions := make(map[string]int, len(r.Header))
	for i, h := range r.Header {
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	var missing []string
	for _, name := range names {
		if _, ok := positions[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaMismatchError{Source: r.Source, Missing: missing}
	}

	columns := make([]domain.Column, 0, len(names))
	for _, name := range names {
		pos := positions[name]
		values := make([]float64, len(r.Records))
		for row, rec := range r.Records {
			if pos >= len(rec) {
				return nil, fmt.Errorf("%w: %s row %d has %d fields", domain.ErrMalformedTable, r.Source, row+1, len(rec))
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[pos]), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d column %q: %v", domain.ErrMalformedTable, r.Source, row+1, name, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s row %d column %q: non-finite value %q", domain.ErrMalformedTable, r.Source, row+1, name, rec[pos])
			}
			values[row] = v
		}
		columns = append(columns, domain.Column{Name: name, Values: values})
	}
	return columns, nil
}

func filter(fields []string, drop map[int]bool) []string {
	out := make([]string, 0, len(fields))
	for i, f := range fields {
		if !drop[i] {
			out = append(out, f)
		}
	}
	return out
}
