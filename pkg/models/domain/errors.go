package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCategory        = errors.New("asset category directory not found")
	ErrMissingAssetFile       = errors.New("asset file not found")
	ErrSchemaMismatch         = errors.New("table does not match category schema")
	ErrAxisLengthMismatch     = errors.New("series length does not match time axis")
	ErrMalformedTable         = errors.New("malformed table")
	ErrKPIParse               = errors.New("kpi not found in report")
	ErrInvalidColumnSelection = errors.New("invalid column selection")
	ErrYearOutOfRange         = errors.New("year index out of range")
	ErrUnknownAsset           = errors.New("unknown asset")
	ErrUnknownProject         = errors.New("unknown project")
)

type SchemaMismatchError struct {
	Source  string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: missing columns [%s]", e.Source, strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

type AxisLengthMismatchError struct {
	Source string
	Got    int
	Want   int
}

func (e *AxisLengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %d rows, time axis has %d", e.Source, e.Got, e.Want)
}

func (e *AxisLengthMismatchError) Unwrap() error {
	return ErrAxisLengthMismatch
}

type InvalidColumnSelectionError struct {
	Unknown   []string
	Available []string
}

func (e *InvalidColumnSelectionError) Error() string {
	return fmt.Sprintf("unknown columns [%s], available [%s]",
		strings.Join(e.Unknown, ", "), strings.Join(e.Available, ", "))
}

func (e *InvalidColumnSelectionError) Unwrap() error {
	return ErrInvalidColumnSelection
}

type IssueKind string

const (
	IssueMissingCategory    IssueKind = "missing_category"
	IssueMissingAssetFile   IssueKind = "missing_asset_file"
	IssueSchemaMismatch     IssueKind = "schema_mismatch"
	IssueAxisLengthMismatch IssueKind = "axis_length_mismatch"
	IssueMalformedTable     IssueKind = "malformed_table"
	IssueKPIParse           IssueKind = "kpi_parse"
	IssueMissingReport      IssueKind = "missing_report"
)

// IngestIssue records an error that was contained during ingestion.
type IngestIssue struct {
	Category AssetCategory
	Asset    string
	Kind     IssueKind
	Message  string
}

// IssueKindOf classifies an ingestion error by the sentinel it wraps.
func IssueKindOf(err error) IssueKind {
	switch {
	case errors.Is(err, ErrSchemaMismatch):
		return IssueSchemaMismatch
	case errors.Is(err, ErrAxisLengthMismatch):
		return IssueAxisLengthMismatch
	case errors.Is(err, ErrMissingCategory):
		return IssueMissingCategory
	case errors.Is(err, ErrMissingAssetFile):
		return IssueMissingAssetFile
	case errors.Is(err, ErrKPIParse):
		return IssueKPIParse
	default:
		return IssueMalformedTable
	}
}
