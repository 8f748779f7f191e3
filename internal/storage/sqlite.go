package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

const defaultListLimit = 50

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		disaster_type TEXT,
		region TEXT,
		document_type TEXT,
		source TEXT,
		date_created TIMESTAMP,
		text TEXT NOT NULL,
		format_metadata TEXT,
		sectors TEXT,
		priority TEXT,
		entities TEXT,
		keywords TEXT,
		word_count INTEGER NOT NULL,
		character_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_disaster_type ON documents(disaster_type);
	CREATE INDEX IF NOT EXISTS idx_documents_region ON documents(region);

	CREATE TABLE IF NOT EXISTS document_chunks (
		document_id TEXT NOT NULL,
		chunk_index INTEGER NOT NULL,
		content TEXT NOT NULL,
		start_offset INTEGER NOT NULL,
		end_offset INTEGER NOT NULL,
		PRIMARY KEY (document_id, chunk_index),
		FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRecord upserts a record by ID: re-processing a file replaces its row.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, record *models.DocumentRecord) error {
	formatMeta, err := json.Marshal(record.FormatMetadata)
	if err != nil {
		return fmt.Errorf("failed to marshal format metadata: %w", err)
	}
	entities, err := json.Marshal(record.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	keywords, err := json.Marshal(record.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents
		 (id, filename, file_path, file_size, disaster_type, region, document_type,
		  source, date_created, text, format_metadata, sectors, priority, entities,
		  keywords, word_count, character_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Metadata.Filename,
		record.Metadata.FilePath,
		record.Metadata.FileSize,
		record.Metadata.DisasterType,
		record.Metadata.Region,
		record.Metadata.DocumentType,
		record.Metadata.Source,
		record.Metadata.DateCreated,
		record.Text,
		string(formatMeta),
		strings.Join(record.Classification.Sectors, ","),
		record.Classification.Priority,
		string(entities),
		string(keywords),
		record.WordCount,
		record.CharacterCount,
	)
	return err
}

// GetRecord returns a record by ID.
func (s *SQLiteStorage) GetRecord(ctx context.Context, id string) (*models.DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, file_path, file_size, disaster_type, region,
		        document_type, source, date_created, text, format_metadata,
		        sectors, priority, entities, keywords, word_count, character_count
		 FROM documents WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return record, err
}

// ListRecords returns records matching filter, newest first. Sector filtering
// happens on the comma-joined sectors column.
func (s *SQLiteStorage) ListRecords(ctx context.Context, filter RecordFilter) ([]*models.DocumentRecord, error) {
	query := `SELECT id, filename, file_path, file_size, disaster_type, region,
	                 document_type, source, date_created, text, format_metadata,
	                 sectors, priority, entities, keywords, word_count, character_count
	          FROM documents`
	var conds []string
	var args []interface{}
	if filter.DisasterType != "" {
		conds = append(conds, "disaster_type = ?")
		args = append(args, filter.DisasterType)
	}
	if filter.Region != "" {
		conds = append(conds, "region = ?")
		args = append(args, filter.Region)
	}
	if filter.Sector != "" {
		conds = append(conds, "(',' || sectors || ',') LIKE ?")
		args = append(args, "%,"+filter.Sector+",%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += " ORDER BY date_created DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DocumentRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// DeleteRecord removes a record and, via cascade, its chunks.
func (s *SQLiteStorage) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

// SaveChunks replaces the stored chunk sequence for a document.
func (s *SQLiteStorage) SaveChunks(ctx context.Context, documentID string, chunks []models.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_id = ?`, documentID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO document_chunks (document_id, chunk_index, content, start_offset, end_offset)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, ch := range chunks {
		if _, err := stmt.ExecContext(ctx, documentID, ch.SequenceIndex, ch.Text, ch.StartOffset, ch.EndOffset); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetChunks returns a document's chunk sequence in order.
func (s *SQLiteStorage) GetChunks(ctx context.Context, documentID string) ([]models.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chunk_index, content, start_offset, end_offset
		 FROM document_chunks WHERE document_id = ? ORDER BY chunk_index`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var ch models.Chunk
		if err := rows.Scan(&ch.SequenceIndex, &ch.Text, &ch.StartOffset, &ch.EndOffset); err != nil {
			return nil, err
		}
		chunks = append(chunks, ch)
	}
	return chunks, rows.Err()
}

// CountRecords returns the number of stored documents.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// CountChunks returns the number of stored chunks.
func (s *SQLiteStorage) CountChunks(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM document_chunks`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (*models.DocumentRecord, error) {
	var record models.DocumentRecord
	var formatMeta, sectors, entities, keywords string
	var disasterType, region, documentType, source sql.NullString
	err := sc.Scan(
		&record.ID,
		&record.Metadata.Filename,
		&record.Metadata.FilePath,
		&record.Metadata.FileSize,
		&disasterType,
		&region,
		&documentType,
		&source,
		&record.Metadata.DateCreated,
		&record.Text,
		&formatMeta,
		&sectors,
		&record.Classification.Priority,
		&entities,
		&keywords,
		&record.WordCount,
		&record.CharacterCount,
	)
	if err != nil {
		return nil, err
	}
	record.Metadata.DisasterType = disasterType.String
	record.Metadata.Region = region.String
	record.Metadata.DocumentType = documentType.String
	record.Metadata.Source = source.String
	if formatMeta != "" && formatMeta != "null" {
		if err := json.Unmarshal([]byte(formatMeta), &record.FormatMetadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal format metadata: %w", err)
		}
	}
	if sectors != "" {
		record.Classification.Sectors = strings.Split(sectors, ",")
	}
	if entities != "" && entities != "null" {
		if err := json.Unmarshal([]byte(entities), &record.Entities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal entities: %w", err)
		}
	}
	if keywords != "" && keywords != "null" {
		if err := json.Unmarshal([]byte(keywords), &record.Keywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
		}
	}
	return &record, nil
}
