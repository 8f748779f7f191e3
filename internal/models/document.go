// Package models defines core data structures for documents, chunks, and classification results.
package models

import "time"

// DocumentMetadata holds filesystem and inferred metadata for a processed document.
// It is built once by the processor and not mutated afterwards.
type DocumentMetadata struct {
	Filename     string    `json:"filename"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	DisasterType string    `json:"disaster_type,omitempty"`
	Region       string    `json:"region,omitempty"`
	DocumentType string    `json:"document_type,omitempty"`
	Source       string    `json:"source,omitempty"`
	DateCreated  time.Time `json:"date_created"`
}

// DocumentRecord is the assembled output for one input document: decoded text,
// metadata, format-specific decoder metadata, and derived analysis.
type DocumentRecord struct {
	ID       string           `json:"id"`
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata"`
	// FormatMetadata is the opaque key/value map produced by the format decoder
	// (page counts, encodings, row counts, ...).
	FormatMetadata map[string]interface{} `json:"document_metadata,omitempty"`
	Classification ClassificationResult   `json:"classification"`
	Entities       EntityBundle           `json:"entities"`
	Keywords       []string               `json:"keywords,omitempty"`
	WordCount      int                    `json:"word_count"`
	CharacterCount int                    `json:"character_count"`
}

// Chunk is a bounded, possibly overlapping substring of a document's text,
// produced for retrieval indexing. Offsets are byte offsets into the source text.
type Chunk struct {
	Text          string `json:"text"`
	StartOffset   int    `json:"start_offset"`
	EndOffset     int    `json:"end_offset"`
	SequenceIndex int    `json:"sequence_index"`
}
