package services

import (
	"testing"

	"github.com/google/uuid"
)

func TestChunkPointIDDeterministic(t *testing.T) {
	resumeID := uuid.New().String()

	a := chunkPointID(resumeID, 0)
	b := chunkPointID(resumeID, 0)
	if a != b {
		t.Fatalf("same chunk must map to the same point id: %q vs %q", a, b)
	}

	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("point id must be a full UUID, got %q: %v", a, err)
	}
}

func TestChunkPointIDDistinctAcrossChunksAndResumes(t *testing.T) {
	resumeA := uuid.New().String()
	resumeB := uuid.New().String()

	seen := make(map[string]bool)
	for _, resumeID := range []string{resumeA, resumeB} {
		for i := 0; i < 100; i++ {
			id := chunkPointID(resumeID, i)
			if seen[id] {
				t.Fatalf("point id collision for resume %s chunk %d", resumeID, i)
			}
			seen[id] = true
		}
	}
}
