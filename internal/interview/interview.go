// Package interview drives the practice question/answer cycle:
// NoQuestions -> QuestionsGenerated -> AllAnswered -> Evaluated.
package interview

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/profile"
	"go.uber.org/zap"
)

//go:embed questions_prompt.md
var questionsPrompt string

//go:embed evaluation_prompt.md
var evaluationPrompt string

// Sections is the resume-section vocabulary questions can target.
var Sections = []string{"skills", "experience", "certifications", "projects", "education"}

type State int

const (
	StateNoQuestions State = iota
	StateQuestionsGenerated
	StateAllAnswered
	StateEvaluated
)

func (s State) String() string {
	switch s {
	case StateNoQuestions:
		return "no questions"
	case StateQuestionsGenerated:
		return "questions generated"
	case StateAllAnswered:
		return "all answered"
	case StateEvaluated:
		return "evaluated"
	default:
		return "unknown"
	}
}

// Item is one (question, answer) pair tagged with its category level and the
// resume section it targets.
type Item struct {
	Question string
	Answer   string
	Level    string
	Section  string
}

// PreconditionError rejects operating on a missing or error-marked profile.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("interview precondition failed: %s", e.Reason)
}

// MissingAnswersError identifies the unanswered questions (1-based) blocking
// an evaluation.
type MissingAnswersError struct {
	Questions []int
}

func (e *MissingAnswersError) Error() string {
	parts := make([]string, 0, len(e.Questions))
	for _, q := range e.Questions {
		parts = append(parts, fmt.Sprintf("Q%d", q))
	}
	return fmt.Sprintf("answers missing for %s", strings.Join(parts, ", "))
}

// Practice is one session's interview cycle. It is owned by the session and
// never shared.
type Practice struct {
	generator ai.Generator
	logger    *zap.Logger

	state   State
	section string
	items   []Item
	report  string
}

func NewPractice(generator ai.Generator, logger *zap.Logger) *Practice {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Practice{
		generator: generator,
		logger:    logger,
		state:     StateNoQuestions,
	}
}

func (p *Practice) State() State { return p.state }

func (p *Practice) Section() string { return p.section }

// Items returns the current question sequence in order.
func (p *Practice) Items() []Item { return p.items }

func (p *Practice) Report() string { return p.report }

// Reset discards in-flight questions, answers and any prior evaluation.
func (p *Practice) Reset() {
	p.state = StateNoQuestions
	p.section = ""
	p.items = nil
	p.report = ""
}

// Generate produces a fresh question sequence for the given resume section.
// Any previous cycle is discarded, including when the section is unchanged.
func (p *Practice) Generate(ctx context.Context, prof *profile.Profile, section string) ([]Item, error) {
	if prof == nil || !prof.Loaded() {
		return nil, &PreconditionError{Reason: "no profile loaded"}
	}
	if prof.Failed() {
		return nil, &PreconditionError{Reason: fmt.Sprintf("profile carries an unresolved error: %s", prof.Err)}
	}

	section = strings.ToLower(strings.TrimSpace(section))
	if !validSection(section) {
		return nil, fmt.Errorf("unknown resume section: %q", section)
	}

	p.Reset()

	content := strings.Join(prof.Section(section), "\n")
	if content == "" {
		content = "(section is empty on this resume)"
	}

	prompt := strings.ReplaceAll(questionsPrompt, "{{SECTION}}", section)
	prompt = strings.ReplaceAll(prompt, "{{CONTENT}}", content)

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	items := parseQuestions(raw, section)
	if len(items) == 0 {
		return nil, fmt.Errorf("no questions found in response: %q", strings.TrimSpace(raw))
	}

	p.items = items
	p.section = section
	p.state = StateQuestionsGenerated

	p.logger.Info("interview questions generated",
		zap.String("section", section),
		zap.Int("count", len(items)),
	)

	return items, nil
}

// Answer records the candidate's answer for the question at index (0-based).
func (p *Practice) Answer(index int, text string) error {
	if p.state == StateNoQuestions {
		return fmt.Errorf("no questions generated")
	}
	if index < 0 || index >= len(p.items) {
		return fmt.Errorf("question index %d out of range", index)
	}

	p.items[index].Answer = text
	return nil
}

// Evaluate submits the full transcript for a free-text evaluation report. It
// refuses to transition while any answer is blank, reporting which questions
// are missing; the state is left unchanged in that case.
func (p *Practice) Evaluate(ctx context.Context, prof *profile.Profile) (string, error) {
	if p.state == StateNoQuestions || len(p.items) == 0 {
		return "", fmt.Errorf("no questions generated")
	}
	if prof == nil || prof.Failed() {
		return "", &PreconditionError{Reason: "profile is missing or carries an unresolved error"}
	}

	missing := make([]int, 0)
	for i, item := range p.items {
		if strings.TrimSpace(item.Answer) == "" {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 {
		return "", &MissingAnswersError{Questions: missing}
	}

	p.state = StateAllAnswered

	prompt := strings.ReplaceAll(evaluationPrompt, "{{PROFILE}}", prof.ToMarkdown())
	prompt = strings.ReplaceAll(prompt, "{{TRANSCRIPT}}", p.transcript())

	report, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("evaluate answers: %w", err)
	}

	p.report = report
	p.state = StateEvaluated

	p.logger.Info("interview answers evaluated",
		zap.String("section", p.section),
		zap.Int("questions", len(p.items)),
	)

	return report, nil
}

func (p *Practice) transcript() string {
	var b strings.Builder
	for i, item := range p.items {
		fmt.Fprintf(&b, "Q%d (%s): %s\nA%d: %s\n", i+1, item.Level, item.Question, i+1, item.Answer)
	}
	return b.String()
}

// parseQuestions splits generated text on bracket-delimited level headers and
// bare Qn numbering.
func parseQuestions(raw, section string) []Item {
	items := make([]Item, 0)
	level := "General"

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "["):
			level = strings.Trim(line, "[]")
		case len(line) > 1 && (line[0] == 'q' || line[0] == 'Q') && strings.Contains(line, ":"):
			question := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			if question == "" {
				continue
			}
			items = append(items, Item{Question: question, Level: level, Section: section})
		}
	}

	return items
}

func validSection(section string) bool {
	for _, s := range Sections {
		if s == section {
			return true
		}
	}
	return false
}
