package domain

import (
	"time"
)

// StageTiming records how long a single pipeline stage took.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// Dataset is the cleaned output table plus load metadata. It is built once
// per load and treated as read-only by every consumer.
type Dataset struct {
	Records    []AnimalRecord `json:"records"`
	SourceFile string         `json:"source_file"`
	LoadedAt   time.Time      `json:"loaded_at"`
	RawRows    int            `json:"raw_rows"`
	Timings    []StageTiming  `json:"timings,omitempty"`
}

// Len returns the number of cleaned records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// DatasetSummary is the metadata block behind the dashboard's
// "About the data" tab.
type DatasetSummary struct {
	SourceFile    string         `json:"source_file"`
	LoadedAt      time.Time      `json:"loaded_at"`
	RawRows       int            `json:"raw_rows"`
	CleanRows     int            `json:"clean_rows"`
	MissingCounts map[string]int `json:"missing_counts"`
	AnimalTypes   []string       `json:"animal_types"`
	OutcomeGroups []string       `json:"outcome_groups"`
}
