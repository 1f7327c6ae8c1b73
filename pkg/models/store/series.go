package store

import "time"

type Ingestion struct {
	ID         string
	Project    string
	Root       string
	StartYear  int
	Years      int
	IngestedAt time.Time
}

// SeriesPoint is one cell of an ingested series in long format.
// Category and Asset are empty for the model streams.
type SeriesPoint struct {
	Stream   string
	Category string
	Asset    string
	Column   string
	Row      int
	Time     time.Time
	Value    float64
}

type IngestionIssue struct {
	Category string
	Asset    string
	Kind     string
	Message  string
}
