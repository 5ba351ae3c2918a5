package profile

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/extract"
	"github.com/spigell/careerdash/internal/util"
	"go.uber.org/zap"
)

//go:embed prompt.md
var promptTemplate string

const (
	// snippetLimit bounds the offending-text fragment carried by CompileError.
	snippetLimit = 200

	defaultMaxLogLength = 200
)

// CompileError covers both generation-service failures and unparseable
// structured responses. Snippet holds the beginning of the offending text for
// diagnosis.
type CompileError struct {
	Cause   string
	Snippet string
}

func (e *CompileError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("compile profile: %s", e.Cause)
	}
	return fmt.Sprintf("compile profile: %s: %q", e.Cause, e.Snippet)
}

// Compiler turns extracted resume text into a Profile. Identical input text
// is memoized so repeated calls within a session never re-issue a generation
// request.
type Compiler struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int

	cacheMu sync.RWMutex
	cache   map[string]*Profile
}

func NewCompiler(generator ai.Generator, logger *zap.Logger, maxLogLength int) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Compiler{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
		cache:     make(map[string]*Profile),
	}
}

// Compile parses resume text into a Profile. Extraction failures surfaced as
// text short-circuit without any external call; marker-wrapped JSON is parsed
// directly, skipping generation entirely.
func (c *Compiler) Compile(ctx context.Context, text string) (*Profile, error) {
	if extract.IsErrorText(text) {
		return nil, &CompileError{
			Cause:   "input is an extraction failure, refusing to compile",
			Snippet: snippet(text),
		}
	}

	key := cacheKey(text)

	c.cacheMu.RLock()
	cached, ok := c.cache[key]
	c.cacheMu.RUnlock()
	if ok {
		c.logger.Debug("profile compile cache hit")
		return cached, nil
	}

	if payload, ok := markedJSON(text); ok {
		parsed, err := decodeProfile(payload)
		if err != nil {
			return nil, &CompileError{
				Cause:   fmt.Sprintf("decode embedded json: %v", err),
				Snippet: snippet(payload),
			}
		}
		return c.finish(key, parsed), nil
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME_TEXT}}", text)

	c.logger.Debug("profile compile request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, &CompileError{Cause: fmt.Sprintf("generation service: %v", err)}
	}

	c.logger.Debug("profile compile response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, c.maxLogLen)),
	)

	payload, ok := ai.IsolateJSON(raw)
	if !ok {
		return nil, &CompileError{
			Cause:   "no json object found in response",
			Snippet: snippet(raw),
		}
	}

	parsed, err := decodeProfile(payload)
	if err != nil {
		return nil, &CompileError{
			Cause:   fmt.Sprintf("decode response: %v", err),
			Snippet: snippet(raw),
		}
	}

	return c.finish(key, parsed), nil
}

func (c *Compiler) finish(key string, p *Profile) *Profile {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = FallbackName
	}

	c.cacheMu.Lock()
	c.cache[key] = p
	c.cacheMu.Unlock()

	c.logger.Info("profile compiled",
		zap.String("name", p.Name),
		zap.Int("skills", len(p.Skills)),
		zap.Int("experience_entries", len(p.Experience)),
	)

	return p
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", sum[:])
}

// markedJSON returns the payload between the explicit JSON markers, when both
// are present in order.
func markedJSON(text string) (string, bool) {
	start := strings.Index(text, extract.BeginJSONMarker)
	if start == -1 {
		return "", false
	}
	rest := text[start+len(extract.BeginJSONMarker):]

	end := strings.Index(rest, extract.EndJSONMarker)
	if end == -1 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

func decodeProfile(payload string) (*Profile, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, err
	}

	var parsed Profile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stringToExperienceHook,
		WeaklyTypedInput: true,
		Result:           &parsed,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(fields); err != nil {
		return nil, err
	}

	return &parsed, nil
}

// stringToExperienceHook lets the experience list mix plain strings with
// structured records.
func stringToExperienceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(ExperienceEntry{}) {
		return ExperienceEntry{Summary: data.(string)}, nil
	}
	return data, nil
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit])
}
