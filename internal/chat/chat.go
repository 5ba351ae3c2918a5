// Package chat answers free-form questions about the loaded resume or a
// stored job description.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/jobs"
	"github.com/spigell/careerdash/internal/profile"
	"go.uber.org/zap"
)

const resumePrompt = `You are a career assistant answering questions about a candidate's resume.

Resume profile:
"""
{{PROFILE}}
"""

Question: {{QUESTION}}

Answer concisely, using only information from the resume. If the resume does not contain the answer, say so.`

const jobPrompt = `You are a career assistant answering questions about a job description.

Job description ({{NAME}}):
"""
{{JD_TEXT}}
"""

Question: {{QUESTION}}

Answer concisely, using only information from the job description. If it does not contain the answer, say so.`

type Assistant struct {
	generator ai.Generator
	logger    *zap.Logger
}

func NewAssistant(generator ai.Generator, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{generator: generator, logger: logger}
}

// AskResume answers a question about the loaded profile.
func (a *Assistant) AskResume(ctx context.Context, p *profile.Profile, question string) (string, error) {
	if p == nil || !p.Loaded() {
		return "", errors.New("no profile loaded")
	}
	if strings.TrimSpace(question) == "" {
		return "", errors.New("question must not be empty")
	}

	prompt := strings.ReplaceAll(resumePrompt, "{{PROFILE}}", p.ToMarkdown())
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer resume question: %w", err)
	}

	a.logger.Debug("resume question answered", zap.String("question", question))
	return answer, nil
}

// AskJob answers a question about one stored job description.
func (a *Assistant) AskJob(ctx context.Context, jd *jobs.JobDescription, question string) (string, error) {
	if jd == nil {
		return "", errors.New("job description is required")
	}
	if strings.TrimSpace(question) == "" {
		return "", errors.New("question must not be empty")
	}

	prompt := strings.ReplaceAll(jobPrompt, "{{NAME}}", jd.Name)
	prompt = strings.ReplaceAll(prompt, "{{JD_TEXT}}", jd.Content)
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", question)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("answer job question: %w", err)
	}

	a.logger.Debug("job question answered",
		zap.String("jd_name", jd.Name),
		zap.String("question", question),
	)
	return answer, nil
}
