package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCleanText(t *testing.T) {
	input := "  John Doe  \n\n\n  Software Engineer\t\n\nGo, Postgres  \n"
	want := "John Doe\nSoftware Engineer\nGo, Postgres"
	if got := CleanText(input); got != want {
		t.Fatalf("CleanText = %q, want %q", got, want)
	}
}

func TestContentHashStableUnderFormattingNoise(t *testing.T) {
	a := ContentHash(CleanText("John Doe\nEngineer"))
	b := ContentHash(CleanText("  John Doe  \n\n  Engineer \n"))
	if a != b {
		t.Fatal("hashes should match after normalization")
	}
	if len(a) != 64 {
		t.Fatalf("expected hex sha256 digest, got %q", a)
	}

	if ContentHash("one") == ContentHash("two") {
		t.Fatal("different texts must hash differently")
	}
}

func TestExtractTextFromTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("  Jane Doe \n\n Engineer \n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	extractor := NewTextExtractor()
	got, err := extractor.ExtractText(path)
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if got != "Jane Doe\nEngineer" {
		t.Fatalf("unexpected extracted text %q", got)
	}
}

func TestExtractTextRejectsUnsupportedExtension(t *testing.T) {
	extractor := NewTextExtractor()
	_, err := extractor.ExtractText("resume.docx")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
