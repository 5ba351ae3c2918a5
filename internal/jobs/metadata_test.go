package jobs

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/spigell/careerdash/internal/extract"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

const jdText = `**Role:** Backend Engineer
We are hiring a full-time backend engineer.
Requirements: Python, SQL, Docker, docker, teamwork.`

func TestExtractMetadataFromGenerator(t *testing.T) {
	stub := &stubGenerator{response: `{"role": "Backend Engineer", "job_type": "Full-time", "key_skills": ["Python", "SQL", "python"]}`}
	extractor := NewExtractor(stub, zap.NewNop())

	meta := extractor.ExtractMetadata(context.Background(), jdText)

	if meta.Role != "Backend Engineer" {
		t.Fatalf("unexpected role: %q", meta.Role)
	}
	if meta.JobType != "Full-time" {
		t.Fatalf("unexpected job type: %q", meta.JobType)
	}
	if !reflect.DeepEqual(meta.KeySkills, []string{"Python", "SQL"}) {
		t.Fatalf("skills should be case-folded deduplicated and sorted, got %v", meta.KeySkills)
	}
}

func TestExtractMetadataHeuristicWithoutGenerator(t *testing.T) {
	extractor := NewExtractor(nil, zap.NewNop())

	meta := extractor.ExtractMetadata(context.Background(), jdText)

	if meta.Role != "Backend Engineer" {
		t.Fatalf("role line should be picked up, got %q", meta.Role)
	}
	if meta.JobType != "Full-time" {
		t.Fatalf("unexpected job type: %q", meta.JobType)
	}

	expected := []string{"Docker", "Python", "SQL", "Teamwork"}
	if !reflect.DeepEqual(meta.KeySkills, expected) {
		t.Fatalf("expected %v, got %v", expected, meta.KeySkills)
	}
}

func TestExtractMetadataHeuristicDefaults(t *testing.T) {
	extractor := NewExtractor(nil, zap.NewNop())

	meta := extractor.ExtractMetadata(context.Background(), "a posting with no recognizable structure")

	if meta.Role != defaultRole {
		t.Fatalf("expected default role, got %q", meta.Role)
	}
	if meta.JobType != defaultJobType {
		t.Fatalf("expected default job type, got %q", meta.JobType)
	}
	if len(meta.KeySkills) != 0 {
		t.Fatalf("expected no skills, got %v", meta.KeySkills)
	}
}

func TestExtractMetadataDegradesToHeuristicOnFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exceeded")}
	extractor := NewExtractor(stub, zap.NewNop())

	meta := extractor.ExtractMetadata(context.Background(), jdText)

	if stub.calls != 1 {
		t.Fatalf("expected a single generation attempt, got %d", stub.calls)
	}
	if meta.Role != "Backend Engineer" {
		t.Fatalf("heuristic fallback should still extract the role, got %q", meta.Role)
	}
}

func TestExtractMetadataDegradesOnUnparseableResponse(t *testing.T) {
	stub := &stubGenerator{response: "not json at all"}
	extractor := NewExtractor(stub, zap.NewNop())

	meta := extractor.ExtractMetadata(context.Background(), jdText)
	if meta.Role != "Backend Engineer" {
		t.Fatalf("heuristic fallback should still extract the role, got %q", meta.Role)
	}
}

func TestExtractMetadataErrorTextYieldsSentinel(t *testing.T) {
	stub := &stubGenerator{response: `{"role": "ignored"}`}
	extractor := NewExtractor(stub, zap.NewNop())

	extractErr := &extract.Error{FileType: "pdf", Cause: "no text content found"}
	meta := extractor.ExtractMetadata(context.Background(), extractErr.Error())

	if meta.Role != ErrorRole {
		t.Fatalf("expected sentinel role, got %q", meta.Role)
	}
	if stub.calls != 0 {
		t.Fatalf("expected no generation calls, got %d", stub.calls)
	}
}

func TestExtractMetadataMemoizesIdenticalText(t *testing.T) {
	stub := &stubGenerator{response: `{"role": "Backend Engineer", "job_type": "Full-time", "key_skills": []}`}
	extractor := NewExtractor(stub, zap.NewNop())

	first := extractor.ExtractMetadata(context.Background(), jdText)
	second := extractor.ExtractMetadata(context.Background(), jdText)

	if stub.calls != 1 {
		t.Fatalf("expected a single generation call, got %d", stub.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached metadata should match: %v vs %v", first, second)
	}
}
