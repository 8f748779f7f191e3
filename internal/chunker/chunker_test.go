package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_shortTextSingleChunk(t *testing.T) {
	c := New(100, 20)
	chunks := c.Chunk("  A short recovery note.  ")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "A short recovery note." {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].StartOffset != 0 || chunks[0].SequenceIndex != 0 {
		t.Errorf("unexpected offsets: %+v", chunks[0])
	}
}

func TestChunker_emptyText(t *testing.T) {
	c := New(100, 20)
	if chunks := c.Chunk("  \n\t "); chunks != nil {
		t.Errorf("whitespace-only text should return nil, got %v", chunks)
	}
}

func TestChunker_coversWholeText(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Sentence number one about cyclone recovery. ")
	}
	text := b.String()
	c := New(200, 50)
	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	covered := make([]bool, len(text))
	prevStart := -1
	for i, ch := range chunks {
		if ch.EndOffset <= ch.StartOffset {
			t.Errorf("chunk %d: end %d <= start %d", i, ch.EndOffset, ch.StartOffset)
		}
		if ch.SequenceIndex != i {
			t.Errorf("chunk %d: sequence index %d", i, ch.SequenceIndex)
		}
		if ch.StartOffset <= prevStart {
			t.Errorf("chunk %d: start %d not advancing past %d", i, ch.StartOffset, prevStart)
		}
		prevStart = ch.StartOffset
		for p := ch.StartOffset; p < ch.EndOffset; p++ {
			covered[p] = true
		}
	}
	for p, ok := range covered {
		if !ok {
			t.Fatalf("offset %d not covered by any chunk", p)
		}
	}
}

func TestChunker_prefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("word ", 30) + ". " + strings.Repeat("tail ", 60)
	c := New(170, 10)
	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	first := chunks[0]
	if !strings.HasSuffix(text[first.StartOffset:first.EndOffset], ".") {
		t.Errorf("first chunk should end at the period, got end %d: %q", first.EndOffset, first.Text)
	}
}

func TestChunker_boundarySlack(t *testing.T) {
	text := strings.Repeat("abcde fghij ", 100) // no periods or newlines
	size := 120
	c := New(size, 30)
	for i, ch := range c.Chunk(text) {
		if got := ch.EndOffset - ch.StartOffset; got > size {
			t.Errorf("chunk %d length %d exceeds size %d", i, got, size)
		}
	}
}

func TestChunker_overlapClamped(t *testing.T) {
	// overlap >= size must still make forward progress.
	text := strings.Repeat("x", 500)
	c := New(100, 100)
	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset <= chunks[i-1].StartOffset {
			t.Fatalf("chunk %d does not advance: %d after %d", i, chunks[i].StartOffset, chunks[i-1].StartOffset)
		}
	}
}

func TestChunker_negativeOverlapMeansNone(t *testing.T) {
	text := strings.Repeat("y", 250)
	c := New(100, -5)
	chunks := c.Chunk(text)
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset != chunks[i-1].EndOffset {
			t.Errorf("expected contiguous chunks without overlap: %d vs %d",
				chunks[i].StartOffset, chunks[i-1].EndOffset)
		}
	}
}

func TestChunker_multibyteSafe(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 50)
	c := New(64, 16)
	for i, ch := range c.Chunk(text) {
		if ch.StartOffset < 0 || ch.EndOffset > len(text) {
			t.Fatalf("chunk %d: offsets out of range: %+v", i, ch)
		}
		if !utf8.ValidString(ch.Text) {
			t.Errorf("chunk %d text is not valid UTF-8: %q", i, ch.Text)
		}
	}
}
