// Package profile compiles extracted resume text into a structured candidate
// profile and renders it into the supported export formats.
package profile

import (
	"fmt"
	"strings"
)

// FallbackName is substituted when the generation service omits the candidate
// name. Defaulting here instead of failing is deliberate: a nameless profile
// would read as "no profile active" everywhere downstream.
const FallbackName = "Unknown Candidate"

// ExperienceEntry is one item of work history. The generation service may
// return either a plain string or a structured record; plain strings land in
// Summary.
type ExperienceEntry struct {
	Company          string   `json:"company,omitempty" mapstructure:"company"`
	Role             string   `json:"role,omitempty" mapstructure:"role"`
	StartYear        string   `json:"start_year,omitempty" mapstructure:"start_year"`
	EndYear          string   `json:"end_year,omitempty" mapstructure:"end_year"`
	Responsibilities []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
	Summary          string   `json:"summary,omitempty" mapstructure:"summary"`
}

// String renders the entry as a single resume line.
func (e ExperienceEntry) String() string {
	if e.Summary != "" {
		return e.Summary
	}

	parts := make([]string, 0, 3)
	if e.Role != "" {
		parts = append(parts, e.Role)
	}
	if e.Company != "" {
		parts = append(parts, "at "+e.Company)
	}
	if e.StartYear != "" || e.EndYear != "" {
		parts = append(parts, fmt.Sprintf("(%s-%s)", e.StartYear, e.EndYear))
	}

	line := strings.Join(parts, " ")
	if len(e.Responsibilities) > 0 {
		line = strings.TrimSpace(line + ": " + strings.Join(e.Responsibilities, "; "))
	}
	return line
}

// Profile is the structured candidate record. Field names follow the wire
// contract with the generation service.
type Profile struct {
	Name            string            `json:"name" mapstructure:"name"`
	Email           string            `json:"email,omitempty" mapstructure:"email"`
	Phone           string            `json:"phone,omitempty" mapstructure:"phone"`
	LinkedIn        string            `json:"linkedin,omitempty" mapstructure:"linkedin"`
	GitHub          string            `json:"github,omitempty" mapstructure:"github"`
	Skills          []string          `json:"skills,omitempty" mapstructure:"skills"`
	Experience      []ExperienceEntry `json:"experience,omitempty" mapstructure:"experience"`
	Education       []string          `json:"education,omitempty" mapstructure:"education"`
	Certifications  []string          `json:"certifications,omitempty" mapstructure:"certifications"`
	Projects        []string          `json:"projects,omitempty" mapstructure:"projects"`
	Strengths       []string          `json:"strength,omitempty" mapstructure:"strength"`
	PersonalSummary string            `json:"personal_details,omitempty" mapstructure:"personal_details"`

	// Err marks a profile produced from a failed compilation. When set, all
	// other fields are unreliable and consumers must refuse to operate.
	Err string `json:"error,omitempty" mapstructure:"error"`
}

// Loaded reports whether a usable profile is active. An empty name is the
// sentinel for "no profile".
func (p *Profile) Loaded() bool {
	return p != nil && strings.TrimSpace(p.Name) != "" && p.Err == ""
}

// Failed reports whether the profile carries an unresolved error marker.
func (p *Profile) Failed() bool {
	return p != nil && p.Err != ""
}

// ExperienceLines renders all experience entries as plain strings.
func (p *Profile) ExperienceLines() []string {
	lines := make([]string, 0, len(p.Experience))
	for _, entry := range p.Experience {
		if line := entry.String(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Section returns the named resume section as plain lines. Section names
// follow the interview vocabulary (skills, experience, certifications,
// projects, education).
func (p *Profile) Section(name string) []string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "skills":
		return p.Skills
	case "experience":
		return p.ExperienceLines()
	case "education":
		return p.Education
	case "certifications":
		return p.Certifications
	case "projects":
		return p.Projects
	case "strength", "strengths":
		return p.Strengths
	default:
		return nil
	}
}
