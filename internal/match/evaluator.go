package match

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/profile"
	"github.com/spigell/careerdash/internal/util"
	"go.uber.org/zap"
)

//go:embed fit_prompt.md
var fitPrompt string

const defaultMaxLogLength = 200

// EvaluationError is a generation-service failure during fit evaluation.
type EvaluationError struct {
	JDName string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate fit for %q: %v", e.JDName, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// Evaluator scores a profile against job descriptions. Results are memoized
// per (job description text, profile) pair.
type Evaluator struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int

	cache map[string]*Report
}

func NewEvaluator(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		cache:     make(map[string]*Report),
	}
}

// Evaluate scores one profile against one job description. A profile carrying
// an error marker yields a sentinel report without any generation call.
func (e *Evaluator) Evaluate(ctx context.Context, jdName, jdText string, p *profile.Profile) (*Report, error) {
	if p == nil || p.Failed() {
		reason := "no profile loaded"
		if p != nil {
			reason = fmt.Sprintf("profile carries an unresolved error: %s", p.Err)
		}
		return &Report{
			JDName:       jdName,
			OverallScore: ScoreUnparseable,
			Text:         fmt.Sprintf("Fit evaluation skipped: %s.", reason),
		}, nil
	}

	key := e.cacheKey(jdText, p)
	if cached, ok := e.cache[key]; ok {
		e.logger.Debug("fit evaluation cache hit", zap.String("jd_name", jdName))
		report := *cached
		report.JDName = jdName
		return &report, nil
	}

	prompt := buildFitPrompt(jdText, p)

	e.logger.Debug("fit evaluation request",
		zap.String("jd_name", jdName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &EvaluationError{JDName: jdName, Err: err}
	}

	report := Parse(raw)
	report.JDName = jdName

	e.logger.Info("fit evaluated",
		zap.String("jd_name", jdName),
		zap.Int("overall_score", report.OverallScore),
	)

	e.cache[key] = report
	return report, nil
}

// EvaluateAll runs the evaluator over every job description and returns the
// results dense-ranked by descending score. A failed evaluation becomes an
// unparseable entry carrying the failure text instead of aborting the batch.
func (e *Evaluator) EvaluateAll(ctx context.Context, descriptions []*NamedText, p *profile.Profile) []*Report {
	results := make([]*Report, 0, len(descriptions))

	for _, jd := range descriptions {
		report, err := e.Evaluate(ctx, jd.Name, jd.Text, p)
		if err != nil {
			e.logger.Warn("fit evaluation failed",
				zap.String("jd_name", jd.Name),
				zap.Error(err),
			)
			report = &Report{
				JDName:       jd.Name,
				OverallScore: ScoreUnparseable,
				Text:         err.Error(),
			}
		}
		results = append(results, report)
	}

	return Rank(results)
}

// NamedText pairs a job description's display name with its raw body.
type NamedText struct {
	Name string
	Text string
}

// buildFitPrompt feeds the full job description and a reduced profile view
// (skills, experience, education only) to keep prompt size bounded.
func buildFitPrompt(jdText string, p *profile.Profile) string {
	prompt := strings.ReplaceAll(fitPrompt, "{{JD_TEXT}}", jdText)
	prompt = strings.ReplaceAll(prompt, "{{SKILLS}}", joinOrNone(p.Skills))
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCE}}", joinOrNone(p.ExperienceLines()))
	prompt = strings.ReplaceAll(prompt, "{{EDUCATION}}", joinOrNone(p.Education))
	return prompt
}

func joinOrNone(lines []string) string {
	if len(lines) == 0 {
		return "none listed"
	}
	return strings.Join(lines, "; ")
}

func (e *Evaluator) cacheKey(jdText string, p *profile.Profile) string {
	// Marshalling cannot fail for a plain struct; the key only needs to be
	// stable for identical inputs.
	encoded, _ := json.Marshal(p)

	h := sha256.New()
	h.Write([]byte(jdText))
	h.Write([]byte{0})
	h.Write(encoded)
	return fmt.Sprintf("%x", h.Sum(nil))
}
