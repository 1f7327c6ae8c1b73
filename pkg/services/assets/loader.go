// Package assets discovers and loads the per-asset result series of every
// category root of a project tree.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/sections"
	"github.com/de-tools/result-atlas/pkg/services/table"
)

type Status int

const (
	StatusLoaded Status = iota
	StatusMissing
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	default:
		return "rejected"
	}
}

// SeriesOutcome is the result of loading one asset's series file.
// Err is set for StatusMissing and StatusRejected.
type SeriesOutcome struct {
	Name   string
	Status Status
	Series domain.Series
	Err    error
}

// TextOutcome is the result of reading one asset's report.
type TextOutcome struct {
	Name     string
	Found    bool
	Sections map[string]string
	Err      error
}

// CategoryOutcome holds every asset folder found under a category root.
// Present is false when the root directory itself does not exist.
type CategoryOutcome[T any] struct {
	Category domain.AssetCategory
	Present  bool
	Assets   map[string]T
}

// Files names the per-asset files looked up inside every asset folder.
type Files struct {
	Series string
	Report string
}

type Loader struct {
	root  string
	files Files
}

func NewLoader(root string, files Files) *Loader {
	return &Loader{root: root, files: files}
}

// LoadSeries loads every asset series under the descriptor's category root and
// aligns it positionally to axis.
func (l *Loader) LoadSeries(desc Descriptor, axis domain.TimeAxis) (CategoryOutcome[SeriesOutcome], error) {
	out := CategoryOutcome[SeriesOutcome]{Category: desc.Category, Assets: map[string]SeriesOutcome{}}

	names, present, err := l.assetFolders(desc)
	if err != nil || !present {
		return out, err
	}
	out.Present = true

	for _, name := range names {
		path := filepath.Join(l.root, desc.Dir, name, l.files.Series)
		out.Assets[name] = loadAsset(name, path, desc, axis)
	}
	return out, nil
}

// LoadText extracts the descriptor's report sections for every asset folder.
// It walks the category root independently of LoadSeries.
func (l *Loader) LoadText(desc Descriptor) (CategoryOutcome[TextOutcome], error) {
	out := CategoryOutcome[TextOutcome]{Category: desc.Category, Assets: map[string]TextOutcome{}}

	names, present, err := l.assetFolders(desc)
	if err != nil || !present {
		return out, err
	}
	out.Present = true

	for _, name := range names {
		path := filepath.Join(l.root, desc.Dir, name, l.files.Report)
		text, found, err := sections.ReadReport(path)
		switch {
		case err != nil:
			out.Assets[name] = TextOutcome{Name: name, Sections: sections.Placeholders(desc.Sections), Err: err}
		case !found:
			out.Assets[name] = TextOutcome{
				Name:     name,
				Sections: sections.Placeholders(desc.Sections),
				Err:      fmt.Errorf("%w: %s", domain.ErrMissingAssetFile, path),
			}
		default:
			out.Assets[name] = TextOutcome{Name: name, Found: true, Sections: sections.ExtractAll(text, desc.Sections)}
		}
	}
	return out, nil
}

func loadAsset(name, path string, desc Descriptor, axis domain.TimeAxis) SeriesOutcome {
	raw, err := table.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return SeriesOutcome{Name: name, Status: StatusMissing, Err: fmt.Errorf("%w: %s", domain.ErrMissingAssetFile, path)}
	}
	if err != nil {
		return SeriesOutcome{Name: name, Status: StatusRejected, Err: err}
	}

	raw = raw.DropLast(desc.DropLast).DropAt(desc.DropAt...)

	if raw.Len() != axis.Len() {
		return SeriesOutcome{
			Name:   name,
			Status: StatusRejected,
			Err:    &domain.AxisLengthMismatchError{Source: path, Got: raw.Len(), Want: axis.Len()},
		}
	}

	columns, err := raw.Numeric(desc.Schema)
	if err != nil {
		return SeriesOutcome{Name: name, Status: StatusRejected, Err: err}
	}

	return SeriesOutcome{
		Name:   name,
		Status: StatusLoaded,
		Series: domain.Series{Time: axis, Columns: columns},
	}
}

// assetFolders lists the immediate subdirectories of the category root in name order.
// A root that exists but cannot be listed fails with domain.ErrMissingCategory.
func (l *Loader) assetFolders(desc Descriptor) ([]string, bool, error) {
	dir := filepath.Join(l.root, desc.Dir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: list %s assets: %w", domain.ErrMissingCategory, desc.Category, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, true, nil
}
