// Package jobs manages the session-scoped job description collection and its
// extracted metadata.
package jobs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobDescription is one stored job posting. Role, JobType and KeySkills are
// extracted metadata; Content is the raw text body.
type JobDescription struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Content string    `json:"content"`
	Role    string    `json:"role"`
	JobType string    `json:"job_type"`
	// KeySkills is a deduplicated, case-folded set. Ordering carries no
	// meaning; it is kept sorted only for stable output.
	KeySkills []string `json:"key_skills"`
}

// New builds a named job description from raw text and extracted metadata.
func New(name, content string, meta Metadata) *JobDescription {
	return &JobDescription{
		ID:        uuid.New(),
		Name:      name,
		Content:   content,
		Role:      meta.Role,
		JobType:   meta.JobType,
		KeySkills: meta.KeySkills,
	}
}

// DisplayName derives the stored name for a posting: the role title plus the
// date the posting was added.
func DisplayName(role string, now time.Time) string {
	return fmt.Sprintf("JD: %s (%s)", role, now.Format("01/02"))
}

// Store is the ordered in-memory collection of job descriptions for one
// session. Nothing persists across sessions.
type Store struct {
	items []*JobDescription
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Add(jd *JobDescription) {
	s.items = append(s.items, jd)
}

// Remove deletes the job description with the given id, preserving the order
// of the remaining entries.
func (s *Store) Remove(id uuid.UUID) bool {
	for i, jd := range s.items {
		if jd.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Clear() {
	s.items = nil
}

func (s *Store) FindByName(name string) *JobDescription {
	for _, jd := range s.items {
		if jd.Name == name {
			return jd
		}
	}
	return nil
}

// Items returns the stored descriptions in insertion order.
func (s *Store) Items() []*JobDescription {
	return s.items
}

func (s *Store) Names() []string {
	names := make([]string, 0, len(s.items))
	for _, jd := range s.items {
		names = append(names, jd.Name)
	}
	return names
}

func (s *Store) Len() int {
	return len(s.items)
}
