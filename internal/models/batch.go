package models

// BatchFailure records one skipped file in a directory batch.
type BatchFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// BatchResult reports the outcome of processing a directory of documents.
// It replaces process-wide counters: every batch call returns its own result.
type BatchResult struct {
	Processed int               `json:"processed"`
	Skipped   int               `json:"skipped"`
	Records   []*DocumentRecord `json:"records,omitempty"`
	Failures  []BatchFailure    `json:"failures,omitempty"`
}
