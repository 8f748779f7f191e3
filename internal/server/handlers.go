package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sarahlunette/resilience2reliefai/internal/decode"
	"github.com/sarahlunette/resilience2reliefai/internal/models"
	"github.com/sarahlunette/resilience2reliefai/internal/processor"
	"github.com/sarahlunette/resilience2reliefai/internal/storage"
	"github.com/sarahlunette/resilience2reliefai/internal/validate"
	"github.com/sarahlunette/resilience2reliefai/pkg/utils"
)

const textPreviewLength = 200

// documentSummary is the list-endpoint view of a record: metadata plus a short
// text preview, without the full text and entity payloads.
type documentSummary struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	DisasterType string   `json:"disaster_type,omitempty"`
	Region       string   `json:"region,omitempty"`
	DocumentType string   `json:"document_type,omitempty"`
	Sectors      []string `json:"sectors"`
	Priority     string   `json:"priority"`
	WordCount    int      `json:"word_count"`
	TextPreview  string   `json:"text_preview"`
}

func summarize(record *models.DocumentRecord) documentSummary {
	return documentSummary{
		ID:           record.ID,
		Filename:     record.Metadata.Filename,
		DisasterType: record.Metadata.DisasterType,
		Region:       record.Metadata.Region,
		DocumentType: record.Metadata.DocumentType,
		Sectors:      record.Classification.Sectors,
		Priority:     record.Classification.Priority,
		WordCount:    record.WordCount,
		TextPreview:  utils.Truncate(record.Text, textPreviewLength),
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.config.Processing.MaxFileSize
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize+1024)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if maxSize > 0 && header.Size > maxSize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "file exceeds maximum size")
		return
	}
	ext := filepath.Ext(header.Filename)
	if !s.processor.Registry().Supported(ext) {
		s.respondError(w, http.StatusUnsupportedMediaType, "unsupported file format: "+ext)
		return
	}

	uploadsDir := s.config.Storage.UploadsPath
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		s.logger.Error("failed to create uploads directory", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	destPath := filepath.Join(uploadsDir, uuid.New().String()+"_"+filepath.Base(header.Filename))
	dest, err := os.Create(destPath)
	if err != nil {
		s.logger.Error("failed to create upload file", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if _, err := io.Copy(dest, file); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		s.respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if err := dest.Close(); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	s.logger.Debug("upload received", zap.String("filename", header.Filename), zap.String("path", destPath))
	record, err := s.processor.ProcessFile(destPath)
	if err != nil {
		_ = os.Remove(destPath)
		s.respondProcessError(w, err)
		return
	}
	// Classify by the name the client sent, not the uuid-prefixed one on disk.
	record = s.reclassifyFilename(record, header.Filename)
	if err := s.storeRecord(r, record); err != nil {
		s.logger.Error("failed to store record", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store record")
		return
	}
	s.respondJSON(w, http.StatusCreated, summarize(record))
}

// reclassifyFilename rebuilds the record with the original filename so the
// uuid prefix on the stored copy does not leak into classification.
func (s *Server) reclassifyFilename(record *models.DocumentRecord, filename string) *models.DocumentRecord {
	return s.processor.Assemble(
		record.Text,
		record.FormatMetadata,
		filepath.Base(filename),
		record.Metadata.FilePath,
		record.Metadata.FileSize,
		record.Metadata.DateCreated,
	)
}

type processPathRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleProcessPath(w http.ResponseWriter, r *http.Request) {
	var req processPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	s.logger.Debug("process request", zap.String("path", req.Path))
	record, err := s.processor.ProcessFile(req.Path)
	if err != nil {
		s.respondProcessError(w, err)
		return
	}
	if err := s.storeRecord(r, record); err != nil {
		s.logger.Error("failed to store record", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store record")
		return
	}
	s.respondJSON(w, http.StatusCreated, summarize(record))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := storage.RecordFilter{
		DisasterType: q.Get("disaster_type"),
		Region:       q.Get("region"),
		Sector:       q.Get("sector"),
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	records, err := s.storage.ListRecords(r.Context(), filter)
	if err != nil {
		s.logger.Error("list documents failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summaries := make([]documentSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, summarize(record))
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": summaries,
		"count":     len(summaries),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := s.storage.GetRecord(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if _, err := s.storage.GetRecord(r.Context(), id); err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	if err := s.storage.DeleteRecord(r.Context(), id); err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type classifyRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	classification, entities, keywords := s.processor.Analyze(req.Text)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"sectors":  classification.Sectors,
		"priority": classification.Priority,
		"entities": entities,
		"keywords": keywords,
	})
}

func (s *Server) handleValidateProject(w http.ResponseWriter, r *http.Request) {
	var project map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	valid, problems := validate.ProjectRecord(project)
	if problems == nil {
		problems = []string{}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  valid,
		"errors": problems,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docCount, err := s.storage.CountRecords(ctx)
	if err != nil {
		s.logger.Error("status: count records failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chunkCount, err := s.storage.CountChunks(ctx)
	if err != nil {
		s.logger.Error("status: count chunks failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docCount,
		"chunks":    chunkCount,
		"config": map[string]interface{}{
			"chunk_size":         s.config.Processing.ChunkSize,
			"chunk_overlap":      s.config.Processing.ChunkOverlap,
			"min_keyword_length": s.config.Processing.MinKeywordLength,
			"max_file_size":      s.config.Processing.MaxFileSize,
			"database_path":      s.config.Storage.DatabasePath,
			"uploads_path":       s.config.Storage.UploadsPath,
			"formats":            s.processor.Registry().Extensions(),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// storeRecord persists a record and its chunk sequence.
func (s *Server) storeRecord(r *http.Request, record *models.DocumentRecord) error {
	if err := s.storage.SaveRecord(r.Context(), record); err != nil {
		return err
	}
	return s.storage.SaveChunks(r.Context(), record.ID, s.processor.Chunk(record.Text))
}

// respondProcessError maps pipeline errors onto HTTP statuses.
func (s *Server) respondProcessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.respondError(w, http.StatusNotFound, "file not found")
	case errors.Is(err, decode.ErrUnsupportedFormat):
		s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, processor.ErrFileTooLarge):
		s.respondError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, decode.ErrDecode):
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("processing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
