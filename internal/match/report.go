// Package match evaluates a compiled profile against job descriptions and
// ranks the results. The fit-report label set is a versioned contract between
// the prompt template and the parser in this package; they must evolve
// together.
package match

import (
	"regexp"
	"strconv"
)

// ScoreUnparseable is the sentinel for a report whose overall score could not
// be extracted. It is distinct from every valid score (0..10).
const ScoreUnparseable = -1

// Labels of the fit-report wire format.
const (
	LabelOverallScore    = "Overall Fit Score:"
	LabelSkillsMatch     = "Skills Match:"
	LabelExperienceMatch = "Experience Match:"
	LabelEducationMatch  = "Education Match:"
	LabelStrengths       = "Strengths/Matches"
	LabelGaps            = "Gaps/Areas for Improvement"
	LabelSummary         = "Overall Summary:"
)

// SubScores are optional per-section percentages. A nil entry means the field
// was missing or malformed in the report text.
type SubScores struct {
	Skills     *int
	Experience *int
	Education  *int
}

// Report is the outcome of scoring one profile against one job description.
type Report struct {
	JDName       string
	OverallScore int
	SubScores    SubScores
	Text         string

	// Rank is assigned by Rank; zero until then.
	Rank int
}

// Scored reports whether the overall score was extracted successfully.
func (r *Report) Scored() bool {
	return r.OverallScore != ScoreUnparseable
}

// Each labeled value is extracted independently so one malformed field never
// invalidates the rest. The patterns tolerate markdown emphasis and optional
// brackets around the number.
var (
	overallPattern    = regexp.MustCompile(`Overall Fit Score:\** *\[?(\d+)\]? */ *10`)
	skillsPattern     = regexp.MustCompile(`Skills Match:\** *\[?(\d+)\]? *%`)
	experiencePattern = regexp.MustCompile(`Experience Match:\** *\[?(\d+)\]? *%`)
	educationPattern  = regexp.MustCompile(`Education Match:\** *\[?(\d+)\]? *%`)
)

// Parse extracts the structured fields from fit-report text. The full text is
// always preserved on the report; missing fields degrade to ScoreUnparseable
// or nil without error.
func Parse(text string) *Report {
	return &Report{
		OverallScore: matchInt(overallPattern, text, 10),
		SubScores: SubScores{
			Skills:     matchIntPtr(skillsPattern, text, 100),
			Experience: matchIntPtr(experiencePattern, text, 100),
			Education:  matchIntPtr(educationPattern, text, 100),
		},
		Text: text,
	}
}

func matchInt(pattern *regexp.Regexp, text string, max int) int {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ScoreUnparseable
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 0 || v > max {
		return ScoreUnparseable
	}
	return v
}

func matchIntPtr(pattern *regexp.Regexp, text string, max int) *int {
	v := matchInt(pattern, text, max)
	if v == ScoreUnparseable {
		return nil
	}
	return &v
}
