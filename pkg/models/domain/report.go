package domain

import "time"

// Report represents a complete project report ready for terminal output
type Report struct {
	Title    string
	Project  string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod represents the modelled project horizon
type TimePeriod struct {
	Start time.Time
	End   time.Time
	Years int
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
