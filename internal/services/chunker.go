package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits resume text into chunks of at most maxChunkSize runes,
// preferring paragraph boundaries and carrying overlap runes between
// consecutive chunks so section context survives the split. All size
// accounting is in runes.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var chunks []string
	var current strings.Builder
	currentRunes := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		currentRunes = 0
		if overlap > 0 {
			tail := lastRunes(chunks[len(chunks)-1], overlap)
			if tail != "" {
				current.WriteString(tail)
				current.WriteString("\n")
				currentRunes = utf8.RuneCountInString(tail) + 1
			}
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// Oversized paragraphs fall back to line granularity.
		pieces := []string{para}
		if utf8.RuneCountInString(para) > maxChunkSize {
			pieces = strings.Split(para, "\n")
		}

		for _, piece := range pieces {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			pieceRunes := utf8.RuneCountInString(piece)
			if current.Len() > 0 && currentRunes+pieceRunes+1 > maxChunkSize {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString("\n")
				currentRunes++
			}
			current.WriteString(piece)
			currentRunes += pieceRunes
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
