// Package mock is a deterministic Generator for offline runs and tests. It
// recognizes the pipeline's prompt kinds by their fixed preambles and returns
// canned, well-formed responses.
package mock

import (
	"context"
	"strings"
)

const profileJSON = `{
  "name": "Alex Candidate",
  "email": "alex@example.com",
  "phone": "555-1234",
  "linkedin": "https://linkedin.com/in/alex-candidate",
  "github": "https://github.com/alexcandidate",
  "skills": ["Python", "SQL", "Project Management"],
  "experience": [
    {"company": "TechCorp", "role": "Senior Dev", "start_year": "2021", "end_year": "2024", "responsibilities": ["Led backend development"]},
    "2 years at StartupX (Data Analyst)"
  ],
  "education": ["M.S. Computer Science"],
  "certifications": ["AWS Certified Developer"],
  "projects": ["AI Dashboard App", "E-commerce Tracker"],
  "strength": ["Problem Solver", "Team Player"],
  "personal_details": "Highly motivated individual."
}`

const metadataJSON = `{"role": "General Analyst", "job_type": "Full-time", "key_skills": ["SQL", "Python", "Teamwork"]}`

const fitReport = `## **Job Fit Analysis Report**

**Overall Fit Score:** [8]/10

---
### **Section Match Analysis**
* **Skills Match:** [90]%
* **Experience Match:** [75]%
* **Education Match:** [95]%

---
### **Strengths/Matches**
* Strong overlap in **Python** and **SQL** skills, directly meeting primary requirements.
* Relevant professional experience aligns with the required seniority level.

### **Gaps/Areas for Improvement**
* Cloud architecture experience is not explicitly listed; consider adding it.

**Overall Summary:** A strong candidate with highly relevant technical skills.`

const questions = `[Behavioral]
Q1: Describe a challenging project where you had to rely on this part of your background.
Q2: Give an example of constructive criticism you received in this area and how you responded.
[Technical/Deep Dive]
Q3: Walk through the architecture of your most significant project and the tools you used.
Q4: If you were starting over in this area, what would you learn earlier?
[Experience]
Q5: Elaborate on your biggest achievement related to this section.`

const evaluation = `## **Interview Evaluation Report**

Each answer was precise and consistent with the resume. Score: 9/10.
Ensure project outcomes are quantified with concrete metrics.

### **Final Assessment**
**Consistency with Resume:** High.
**Overall Recommendation:** The candidate is well-prepared and articulate.`

const chatAnswer = `The resume indicates proficiency in Python, SQL and project management, with senior development experience at TechCorp.`

// Generator returns canned completions. Calls counts every Generate
// invocation, which lets tests assert memoization behavior.
type Generator struct {
	Calls int
}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(_ context.Context, prompt string) (string, error) {
	g.Calls++

	switch {
	case strings.Contains(prompt, "precise resume parser"):
		return profileJSON, nil
	case strings.Contains(prompt, "job posting analyst"):
		return metadataJSON, nil
	case strings.Contains(prompt, "expert recruiter"):
		return fitReport, nil
	case strings.Contains(prompt, "interview coach"):
		return questions, nil
	case strings.Contains(prompt, "interview evaluator"):
		return evaluation, nil
	default:
		return chatAnswer, nil
	}
}

func (g *Generator) Model() string {
	return "mock"
}
