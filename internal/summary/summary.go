// Package summary defines the per-file processing-summary event published
// after a polar volume has run through the dealiasing/superobing core,
// per SPEC_FULL.md §9/§10.
package summary

import "time"

// ProcessingSummary reports what happened to one input file: which stages
// ran, how many warnings/errors each raised, and whether the file was
// persisted or aborted.
type ProcessingSummary struct {
	FileID      string        `json:"file_id"`
	ProcessedAt time.Time     `json:"processed_at"`
	Duration    time.Duration `json:"duration_ns"`

	DealiasingRan bool `json:"dealiasing_ran"`
	SuperobingRan bool `json:"superobing_ran"`

	DealiasWarnings int `json:"dealias_warnings"`
	DealiasErrors   int `json:"dealias_errors"`
	SuperobWarnings int `json:"superob_warnings"`
	SuperobErrors   int `json:"superob_errors"`

	Success bool `json:"success"`
}
