// Package storage persists processed document records and their chunks.
// The processing pipeline itself never touches storage; server, watcher, and
// CLI glue hand assembled records over.
package storage

import (
	"context"

	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

// RecordFilter narrows ListRecords. Zero values mean no filtering; Limit 0
// means a server-chosen default.
type RecordFilter struct {
	DisasterType string
	Region       string
	Sector       string
	Offset       int
	Limit        int
}

// Storage is the persistence interface for document records.
type Storage interface {
	SaveRecord(ctx context.Context, record *models.DocumentRecord) error
	GetRecord(ctx context.Context, id string) (*models.DocumentRecord, error)
	ListRecords(ctx context.Context, filter RecordFilter) ([]*models.DocumentRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	SaveChunks(ctx context.Context, documentID string, chunks []models.Chunk) error
	GetChunks(ctx context.Context, documentID string) ([]models.Chunk, error)
	CountRecords(ctx context.Context) (int64, error)
	CountChunks(ctx context.Context) (int64, error)
	Close() error
}
