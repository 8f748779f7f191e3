// Package processor assembles DocumentRecords: it decodes files, runs the
// classification and extraction pipeline, and reports batch outcomes.
package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/sarahlunette/resilience2reliefai/internal/chunker"
	"github.com/sarahlunette/resilience2reliefai/internal/classify"
	"github.com/sarahlunette/resilience2reliefai/internal/config"
	"github.com/sarahlunette/resilience2reliefai/internal/decode"
	"github.com/sarahlunette/resilience2reliefai/internal/entity"
	"github.com/sarahlunette/resilience2reliefai/internal/models"
	"github.com/sarahlunette/resilience2reliefai/internal/textproc"
)

// ErrFileTooLarge marks a file above the configured size cap.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// Processor runs the full pipeline for single files and directories. All
// pipeline stages are pure; a Processor is safe for concurrent use.
type Processor struct {
	registry  *decode.Registry
	filename  *classify.FilenameClassifier
	content   *classify.ContentClassifier
	entities  *entity.Extractor
	chunker   *chunker.Chunker
	cfg       *config.ProcessingConfig
	logger    *zap.Logger // optional; when set, logs batch progress and skips
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a logger for batch progress and skip events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// New creates a processor. gazetteer and patterns may be nil to use the
// built-in tables. Returns an error if entity patterns fail to compile.
func New(cfg *config.ProcessingConfig, gazetteer *classify.Gazetteer, patterns *entity.Patterns, opts ...Option) (*Processor, error) {
	extractor, err := entity.NewExtractor(patterns)
	if err != nil {
		return nil, fmt.Errorf("entity extractor: %w", err)
	}
	p := &Processor{
		registry: decode.DefaultRegistry(cfg.Encodings),
		filename: classify.NewFilenameClassifier(gazetteer),
		content:  classify.NewContentClassifier(gazetteer),
		entities: extractor,
		chunker:  chunker.New(cfg.ChunkSize, cfg.ChunkOverlap),
		cfg:      cfg,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Registry exposes the decoder registry (for extension checks in glue code).
func (p *Processor) Registry() *decode.Registry { return p.registry }

// ProcessFile decodes and analyzes a single file into a DocumentRecord.
// A missing file propagates fs.ErrNotExist; an unregistered extension
// propagates decode.ErrUnsupportedFormat; oversized files propagate
// ErrFileTooLarge.
func (p *Processor) ProcessFile(path string) (*models.DocumentRecord, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}
	if p.cfg.MaxFileSize > 0 && info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, absPath, info.Size())
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if !p.registry.Supported(ext) {
		return nil, fmt.Errorf("%w: %q", decode.ErrUnsupportedFormat, ext)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	text, formatMeta, err := p.registry.Decode(content, ext)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(absPath), err)
	}
	return p.Assemble(text, formatMeta, filepath.Base(absPath), absPath, info.Size(), info.ModTime()), nil
}

// Analyze runs the content-analysis stages over raw text: sector and priority
// classification, entity extraction, and keyword extraction.
func (p *Processor) Analyze(text string) (models.ClassificationResult, models.EntityBundle, []string) {
	return p.content.Classify(text),
		p.entities.Extract(text),
		textproc.ExtractKeywords(text, p.cfg.MinKeywordLength)
}

// Assemble combines decoded text, filesystem metadata, classifier outputs, and
// format metadata into one immutable record. Pure; exported so glue code can
// assemble records for text that arrives without a backing file.
func (p *Processor) Assemble(text string, formatMeta map[string]interface{}, filename, path string, size int64, created time.Time) *models.DocumentRecord {
	fromName := p.filename.Classify(filename)
	classification, entities, keywords := p.Analyze(text)
	return &models.DocumentRecord{
		ID:   DocID(path),
		Text: text,
		Metadata: models.DocumentMetadata{
			Filename:     filename,
			FilePath:     path,
			FileSize:     size,
			DisasterType: fromName.DisasterType,
			Region:       fromName.Region,
			DocumentType: fromName.DocumentType,
			DateCreated:  created,
		},
		FormatMetadata: formatMeta,
		Classification: classification,
		Entities:       entities,
		Keywords:       keywords,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: utf8.RuneCountInString(text),
	}
}

// Chunk splits text into the retrieval-ready chunk sequence.
func (p *Processor) Chunk(text string) []models.Chunk {
	return p.chunker.Chunk(text)
}

// ProcessDirectory walks dir recursively and processes every regular file.
// Per-file failures (unsupported extension, decode failure, unreadable file)
// are logged and skipped; the batch continues. A missing dir fails the whole
// call. The returned BatchResult is the only processing state: there are no
// process-wide counters.
func (p *Processor) ProcessDirectory(dir string) (*models.BatchResult, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", absDir)
	}

	result := &models.BatchResult{}
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		record, procErr := p.ProcessFile(path)
		if procErr != nil {
			result.Skipped++
			result.Failures = append(result.Failures, models.BatchFailure{
				Path:   path,
				Reason: procErr.Error(),
			})
			if p.logger != nil {
				p.logger.Warn("skipping file", zap.String("path", path), zap.Error(procErr))
			}
			return nil
		}
		result.Processed++
		result.Records = append(result.Records, record)
		if p.logger != nil {
			p.logger.Debug("processed file", zap.String("path", path), zap.Int("words", record.WordCount))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p.logger != nil {
		p.logger.Info("batch complete",
			zap.String("dir", absDir),
			zap.Int("processed", result.Processed),
			zap.Int("skipped", result.Skipped),
		)
	}
	return result, nil
}
