package jobs

import "strings"

// Criteria narrows the stored job descriptions. Empty fields match
// everything; Skills must all be present on a posting for it to pass.
type Criteria struct {
	Role    string
	JobType string
	Skills  []string
}

// Filter returns the stored descriptions matching the criteria, in insertion
// order.
func (s *Store) Filter(c Criteria) []*JobDescription {
	matched := make([]*JobDescription, 0, len(s.items))

	for _, jd := range s.items {
		if c.Role != "" && !strings.EqualFold(c.Role, jd.Role) {
			continue
		}
		if c.JobType != "" && !strings.EqualFold(c.JobType, jd.JobType) {
			continue
		}
		if !hasAllSkills(jd.KeySkills, c.Skills) {
			continue
		}
		matched = append(matched, jd)
	}

	return matched
}

func hasAllSkills(have, want []string) bool {
	if len(want) == 0 {
		return true
	}

	folded := make(map[string]struct{}, len(have))
	for _, skill := range have {
		folded[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	for _, skill := range want {
		if _, ok := folded[strings.ToLower(strings.TrimSpace(skill))]; !ok {
			return false
		}
	}
	return true
}
