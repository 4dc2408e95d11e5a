package domain

import "time"

// ImportStats holds statistics from a dataset import
type ImportStats struct {
	Source       string
	RowsRead     int
	RowsImported int
	RowsSkipped  int
	Duration     time.Duration
}

// ScoreSummary describes one quality score over a set of rows
type ScoreSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
}

// QualityStats summarises the automatic quality scores of a row selection
type QualityStats struct {
	Selection      SelectionType `json:"selection"`
	Rows           int           `json:"rows"`
	Alignment      ScoreSummary  `json:"alignment"`
	Fluency        ScoreSummary  `json:"fluency"`
	Grammaticality ScoreSummary  `json:"grammaticality"`
}
