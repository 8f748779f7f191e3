// Package chunker splits document text into overlapping, boundary-aware windows
// for retrieval indexing.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/sarahlunette/resilience2reliefai/internal/models"
)

// Defaults for chunk window size and overlap, in bytes of source text.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Chunker produces overlapping chunks of at most chunkSize bytes, preferring
// to cut at sentence boundaries (periods and newlines).
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker. Non-positive chunkSize falls back to DefaultChunkSize.
// overlap <= 0 means no overlap; overlap >= chunkSize is clamped to
// chunkSize-1 so every step moves forward.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits text into an ordered chunk sequence. Text no longer than the
// chunk size yields a single chunk holding the trimmed whole text. Offsets are
// byte offsets into text; together the chunks cover [0, len(text)) without gaps.
// Whitespace-only input yields nil.
func (c *Chunker) Chunk(text string) []models.Chunk {
	n := len(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if n <= c.chunkSize {
		return []models.Chunk{{
			Text:          strings.TrimSpace(text),
			StartOffset:   0,
			EndOffset:     n,
			SequenceIndex: 0,
		}}
	}

	var chunks []models.Chunk
	seq := 0
	start := 0
	for start < n {
		end := start + c.chunkSize
		if end < n {
			// Prefer the rightmost sentence end in the window to avoid
			// mid-sentence cuts; include the boundary character itself.
			if p := lastBoundary(text, start, end); p > start {
				end = p + 1
			} else {
				end = alignToRuneStart(text, end, start)
			}
		}
		sliceEnd := end
		if sliceEnd > n {
			sliceEnd = n
		}
		if piece := strings.TrimSpace(text[start:sliceEnd]); piece != "" {
			chunks = append(chunks, models.Chunk{
				Text:          piece,
				StartOffset:   start,
				EndOffset:     sliceEnd,
				SequenceIndex: seq,
			})
			seq++
		}
		next := alignToRuneStart(text, end-c.overlap, start)
		if next <= start {
			// A boundary deep inside the overlap region would step backward;
			// advance without overlap instead.
			next = end
		}
		start = next
	}
	return chunks
}

// lastBoundary returns the byte index of the rightmost '.' or '\n' in
// text[start:end], or -1 when there is none.
func lastBoundary(text string, start, end int) int {
	window := text[start:end]
	period := strings.LastIndexByte(window, '.')
	newline := strings.LastIndexByte(window, '\n')
	p := period
	if newline > p {
		p = newline
	}
	if p < 0 {
		return -1
	}
	return start + p
}

// alignToRuneStart moves pos backward to the nearest UTF-8 rune start, never
// before floor.
func alignToRuneStart(text string, pos, floor int) int {
	for pos > floor && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}
