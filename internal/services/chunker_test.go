package services

import (
	"strings"
	"testing"
)

func TestChunkTextRespectsMaxSize(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("skills and experience line\n", 50)
	chunks := chunker.ChunkText(text, 200, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len([]rune(chunk)) > 200+20+1 {
			t.Fatalf("chunk %d exceeds size bound: %d runes", i, len([]rune(chunk)))
		}
	}
}

func TestChunkTextPrefersParagraphBoundaries(t *testing.T) {
	chunker := NewTextChunker()

	text := "Experience\nFive years of Go.\n\nEducation\nBSc Computer Science."
	chunks := chunker.ChunkText(text, 1000, 0)

	if len(chunks) != 1 {
		t.Fatalf("short text should stay in one chunk, got %d", len(chunks))
	}
	if !strings.Contains(chunks[0], "Experience") || !strings.Contains(chunks[0], "Education") {
		t.Fatalf("chunk lost content: %q", chunks[0])
	}
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("alpha beta gamma delta\n", 30)
	chunks := chunker.ChunkText(text, 100, 30)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	tail := lastRunes(chunks[0], 30)
	if !strings.Contains(chunks[1], tail) {
		t.Fatal("second chunk should start with the first chunk's tail")
	}
}

func TestChunkTextCountsRunesNotBytes(t *testing.T) {
	chunker := NewTextChunker()

	// Three bytes per rune; byte-based accounting would overshoot the limit
	// roughly threefold.
	text := strings.Repeat("résumé für müller straße\n", 40)
	chunks := chunker.ChunkText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 100 {
			t.Fatalf("chunk %d has %d runes, over the limit of 100", i, n)
		}
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.ChunkText("", 100, 10); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty text, got %v", chunks)
	}
	if chunks := chunker.ChunkText("\n\n  \n\n", 100, 10); len(chunks) != 0 {
		t.Fatalf("expected no chunks for whitespace text, got %v", chunks)
	}
}
