package jobs

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	_ "embed"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/extract"
	"go.uber.org/zap"
)

//go:embed jd_prompt.md
var metadataPrompt string

const (
	// ErrorRole marks metadata produced from a known-bad payload.
	ErrorRole = "Error"

	defaultRole    = "General Analyst"
	defaultJobType = "Full-time"
)

// Metadata is the small set of fields extracted from a job description.
type Metadata struct {
	Role      string   `json:"role"`
	JobType   string   `json:"job_type"`
	KeySkills []string `json:"key_skills"`
}

var roleLinePattern = regexp.MustCompile(`(?im)^\s*\**\s*(?:role|title|position|job title)\s*\**\s*[:\-]\s*(.+)$`)

// jobTypeVocabulary and skillVocabulary drive the heuristic strategy. Skill
// entries keep their canonical casing in the output.
var (
	jobTypeVocabulary = []string{"Full-time", "Part-time", "Contract", "Internship", "Remote"}

	skillVocabulary = []string{
		"Python", "SQL", "Go", "Java", "JavaScript", "TypeScript", "C++",
		"AWS", "GCP", "Azure", "Docker", "Kubernetes", "Terraform",
		"Machine Learning", "Data Analysis", "Cloud Architecture",
		"Excel", "Tableau", "Project Management", "Agile",
		"Communication", "Teamwork", "Leadership",
	}
)

// Extractor produces Metadata from raw job description text. With a generator
// it delegates to the generation service; without one it falls back to
// heuristic pattern extraction. Both strategies produce the same shape, and
// identical input text is memoized.
type Extractor struct {
	generator ai.Generator
	logger    *zap.Logger

	cacheMu sync.RWMutex
	cache   map[string]Metadata
}

func NewExtractor(generator ai.Generator, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		cache:     make(map[string]Metadata),
	}
}

// ExtractMetadata never fails hard: generation problems degrade to the
// heuristic strategy, and a known-bad payload degrades to sentinel values
// without any generation call.
func (e *Extractor) ExtractMetadata(ctx context.Context, text string) Metadata {
	if extract.IsErrorText(text) {
		return Metadata{Role: ErrorRole, JobType: "", KeySkills: []string{}}
	}

	sum := sha256.Sum256([]byte(text))
	key := fmt.Sprintf("%x", sum[:])

	e.cacheMu.RLock()
	cached, ok := e.cache[key]
	e.cacheMu.RUnlock()
	if ok {
		e.logger.Debug("jd metadata cache hit")
		return cached
	}

	meta := e.extract(ctx, text)

	e.cacheMu.Lock()
	e.cache[key] = meta
	e.cacheMu.Unlock()

	return meta
}

func (e *Extractor) extract(ctx context.Context, text string) Metadata {
	if e.generator == nil {
		return heuristicMetadata(text)
	}

	prompt := strings.ReplaceAll(metadataPrompt, "{{JD_TEXT}}", text)

	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn("jd metadata generation failed, falling back to heuristics", zap.Error(err))
		return heuristicMetadata(text)
	}

	payload, ok := ai.IsolateJSON(raw)
	if !ok {
		e.logger.Warn("jd metadata response had no json object, falling back to heuristics")
		return heuristicMetadata(text)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(payload), &meta); err != nil {
		e.logger.Warn("jd metadata response unparseable, falling back to heuristics", zap.Error(err))
		return heuristicMetadata(text)
	}

	return normalizeMetadata(meta)
}

func heuristicMetadata(text string) Metadata {
	role := defaultRole
	if m := roleLinePattern.FindStringSubmatch(text); m != nil {
		role = strings.TrimSpace(strings.Trim(m[1], "* "))
	}

	jobType := defaultJobType
	lower := strings.ToLower(text)
	for _, candidate := range jobTypeVocabulary {
		if strings.Contains(lower, strings.ToLower(candidate)) {
			jobType = candidate
			break
		}
	}

	skills := make([]string, 0)
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}

	return normalizeMetadata(Metadata{Role: role, JobType: jobType, KeySkills: skills})
}

func normalizeMetadata(meta Metadata) Metadata {
	meta.Role = strings.TrimSpace(meta.Role)
	if meta.Role == "" {
		meta.Role = defaultRole
	}

	meta.JobType = strings.TrimSpace(meta.JobType)
	if meta.JobType == "" {
		meta.JobType = defaultJobType
	}

	meta.KeySkills = dedupFold(meta.KeySkills)
	return meta
}

// dedupFold deduplicates skills case-insensitively, keeping the first casing
// seen, and sorts for stable output.
func dedupFold(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		folded := strings.ToLower(skill)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		out = append(out, skill)
	}

	sort.Strings(out)
	return out
}
