package processor

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sarahlunette/resilience2reliefai/internal/config"
	"github.com/sarahlunette/resilience2reliefai/internal/decode"
	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

const recoveryPlanText = `CYCLONE PAM RECOVERY PLAN - VANUATU

Following Cyclone Pam, an estimated 17,000 houses require urgent repair or
reconstruction across the affected provinces. The UNDP and the World Bank
estimate $450 million is needed for housing and road reconstruction.
Work should begin before March 1, 2016.`

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	p, err := New(&cfg.Processing, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessor_ProcessFile(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()
	path := writeDoc(t, dir, "cyclone_pam_vanuatu_2015.txt", recoveryPlanText)

	record, err := p.ProcessFile(path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if record.Metadata.DisasterType != "cyclone" {
		t.Errorf("disaster type = %q, want cyclone", record.Metadata.DisasterType)
	}
	if record.Metadata.Region != "vanuatu" {
		t.Errorf("region = %q, want vanuatu", record.Metadata.Region)
	}
	if record.WordCount == 0 {
		t.Error("word count should be positive")
	}
	if record.CharacterCount == 0 {
		t.Error("character count should be positive")
	}
	if record.Metadata.FileSize <= 0 {
		t.Error("file size should be positive")
	}
	foundAmount := false
	for _, a := range record.Entities.Amounts {
		if strings.Contains(a, "450 million") {
			foundAmount = true
		}
	}
	if !foundAmount {
		t.Errorf("amounts missing $450 million: %v", record.Entities.Amounts)
	}
	foundHousing := false
	for _, s := range record.Classification.Sectors {
		if s == "housing" {
			foundHousing = true
		}
	}
	if !foundHousing {
		t.Errorf("sectors missing housing: %v", record.Classification.Sectors)
	}
	if record.Classification.Priority != models.PriorityHigh {
		t.Errorf("priority = %q, want high (text says urgent)", record.Classification.Priority)
	}
	if record.ID == "" || record.ID != DocID(record.Metadata.FilePath) {
		t.Errorf("record ID should be the deterministic path ID, got %q", record.ID)
	}
}

func TestProcessor_ProcessFile_notFound(t *testing.T) {
	p := newTestProcessor(t)
	_, err := p.ProcessFile("/nonexistent/file.txt")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestProcessor_ProcessFile_unsupported(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()
	path := writeDoc(t, dir, "binary.exe", "MZ")
	_, err := p.ProcessFile(path)
	if !errors.Is(err, decode.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestProcessor_ProcessFile_tooLarge(t *testing.T) {
	cfg := config.Config{}
	config.ApplyDefaults(&cfg)
	cfg.Processing.MaxFileSize = 10
	p, err := New(&cfg.Processing, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeDoc(t, dir, "big.txt", strings.Repeat("x", 100))
	if _, err := p.ProcessFile(path); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestProcessor_ProcessDirectory(t *testing.T) {
	p := newTestProcessor(t)
	dir := t.TempDir()
	writeDoc(t, dir, "tonga_flood_assessment.txt", "Flood damage to roads and bridges. Urgent repair needed.")
	writeDoc(t, dir, "samoa_notes.md", "Health clinic vaccination drive in Apia.")
	writeDoc(t, dir, "ignore.bin", "\x00\x01\x02")

	result, err := p.ProcessDirectory(dir)
	if err != nil {
		t.Fatalf("ProcessDirectory: %v", err)
	}
	if result.Processed != 2 {
		t.Errorf("processed = %d, want 2", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the .bin file)", result.Skipped)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %v", result.Failures)
	}
	if !strings.Contains(result.Failures[0].Reason, "unsupported") {
		t.Errorf("failure reason = %q", result.Failures[0].Reason)
	}
	if len(result.Records) != 2 {
		t.Errorf("records = %d", len(result.Records))
	}
}

func TestProcessor_ProcessDirectory_notFound(t *testing.T) {
	p := newTestProcessor(t)
	if _, err := p.ProcessDirectory("/nonexistent/dir"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestProcessor_Chunk(t *testing.T) {
	p := newTestProcessor(t)
	chunks := p.Chunk(strings.Repeat("A sentence about recovery. ", 100))
	if len(chunks) < 2 {
		t.Errorf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.SequenceIndex != i {
			t.Errorf("chunk %d has sequence index %d", i, ch.SequenceIndex)
		}
	}
}

func TestDocID(t *testing.T) {
	a := DocID("/data/plan.pdf")
	b := DocID("/data/plan.pdf")
	c := DocID("/data/other.pdf")
	if a != b {
		t.Error("same path must give same ID")
	}
	if a == c {
		t.Error("different paths must give different IDs")
	}
	if !strings.HasPrefix(a, "doc:") {
		t.Errorf("ID prefix: %q", a)
	}
}
