// Package session holds all state owned by one interactive session. There is
// no ambient global state: every pipeline step reads and writes through the
// Session object, and teardown destroys everything.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/chat"
	"github.com/spigell/careerdash/internal/extract"
	"github.com/spigell/careerdash/internal/interview"
	"github.com/spigell/careerdash/internal/jobs"
	"github.com/spigell/careerdash/internal/match"
	"github.com/spigell/careerdash/internal/profile"
	"go.uber.org/zap"
)

// Session aggregates the per-session state and the pipeline components whose
// memoization caches share its lifetime.
type Session struct {
	Profile    *profile.Profile
	ResumeText string
	Jobs       *jobs.Store
	Matches    []*match.Report
	Interview  *interview.Practice

	compiler  *profile.Compiler
	metadata  *jobs.Extractor
	evaluator *match.Evaluator
	assistant *chat.Assistant
	logger    *zap.Logger
}

func New(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		Jobs:      jobs.NewStore(),
		Interview: interview.NewPractice(generator, logger),
		compiler:  profile.NewCompiler(generator, logger, maxLogLength),
		metadata:  jobs.NewExtractor(generator, logger),
		evaluator: match.NewEvaluator(generator, logger, maxLogLength),
		assistant: chat.NewAssistant(generator, logger),
		logger:    logger,
	}
}

// LoadResumeFile extracts content from the file at path and compiles it into
// the active profile.
func (s *Session) LoadResumeFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume file: %w", err)
	}

	text, err := extract.Extract(data, path)
	if err != nil {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.setFailedProfile(name, err)
		return err
	}

	return s.LoadResumeText(ctx, text, filepath.Base(path))
}

// LoadResumeText compiles already-extracted text into the active profile.
// Loading a profile, successfully or not, resets match results and the
// interview cycle: they were derived from the previous profile.
func (s *Session) LoadResumeText(ctx context.Context, text, sourceName string) error {
	compiled, err := s.compiler.Compile(ctx, text)
	if err != nil {
		s.setFailedProfile(sourceName, err)
		return err
	}

	s.Profile = compiled
	s.ResumeText = text
	s.Matches = nil
	s.Interview.Reset()

	s.logger.Info("profile loaded", zap.String("name", compiled.Name))
	return nil
}

func (s *Session) setFailedProfile(name string, err error) {
	s.Profile = &profile.Profile{Name: name, Err: err.Error()}
	s.Matches = nil
	s.Interview.Reset()
}

// AddJobText stores a job description from pasted text, extracting its
// metadata first.
func (s *Session) AddJobText(ctx context.Context, text string) (*jobs.JobDescription, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("job description text must not be empty")
	}

	meta := s.metadata.ExtractMetadata(ctx, text)
	jd := jobs.New(jobs.DisplayName(meta.Role, time.Now()), text, meta)
	s.Jobs.Add(jd)

	s.logger.Info("job description added",
		zap.String("name", jd.Name),
		zap.String("role", jd.Role),
		zap.Int("key_skills", len(jd.KeySkills)),
	)
	return jd, nil
}

// AddJobURL stores a job description synthesized from a posting URL.
func (s *Session) AddJobURL(ctx context.Context, url string) (*jobs.JobDescription, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("url must not be empty")
	}

	_, content := jobs.FetchFromURL(url)
	return s.AddJobText(ctx, content)
}

// ClearJobs drops every stored job description along with the match results
// derived from them.
func (s *Session) ClearJobs() {
	s.Jobs.Clear()
	s.Matches = nil
}

// BatchMatch evaluates the active profile against the given job descriptions
// and stores the dense-ranked results on the session.
func (s *Session) BatchMatch(ctx context.Context, selected []*jobs.JobDescription) ([]*match.Report, error) {
	if s.Profile == nil || (!s.Profile.Loaded() && !s.Profile.Failed()) {
		return nil, fmt.Errorf("no profile loaded")
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no job descriptions selected")
	}

	descriptions := make([]*match.NamedText, 0, len(selected))
	for _, jd := range selected {
		descriptions = append(descriptions, &match.NamedText{Name: jd.Name, Text: jd.Content})
	}

	s.Matches = s.evaluator.EvaluateAll(ctx, descriptions, s.Profile)
	return s.Matches, nil
}

// AskResume answers a question about the loaded profile.
func (s *Session) AskResume(ctx context.Context, question string) (string, error) {
	return s.assistant.AskResume(ctx, s.Profile, question)
}

// AskJob answers a question about the named job description.
func (s *Session) AskJob(ctx context.Context, jdName, question string) (string, error) {
	jd := s.Jobs.FindByName(jdName)
	if jd == nil {
		return "", fmt.Errorf("no job description named %q", jdName)
	}
	return s.assistant.AskJob(ctx, jd, question)
}
