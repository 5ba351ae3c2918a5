package profile

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func sampleProfile() *Profile {
	return &Profile{
		Name:   "Alex Candidate",
		Email:  "alex@example.com",
		Phone:  "555-1234",
		Skills: []string{"Python", "SQL"},
		Experience: []ExperienceEntry{
			{Company: "TechCorp", Role: "Senior Dev", StartYear: "2021", EndYear: "2024"},
			{Summary: "2 years at StartupX (Data Analyst)"},
		},
		Education:       []string{"M.S. Computer Science"},
		PersonalSummary: "Highly motivated individual.",
	}
}

// An exported profile must be loadable again without any generation call.
func TestToJSONRoundTripsThroughCompiler(t *testing.T) {
	original := sampleProfile()

	wrapped, err := original.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stub := &stubGenerator{err: errors.New("should not be called")}
	compiler := NewCompiler(stub, zap.NewNop(), 0)

	restored, err := compiler.Compile(context.Background(), wrapped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.calls != 0 {
		t.Fatalf("expected no generation calls, got %d", stub.calls)
	}
	if restored.Name != original.Name {
		t.Fatalf("expected name %q, got %q", original.Name, restored.Name)
	}
	if len(restored.Skills) != len(original.Skills) {
		t.Fatalf("expected %d skills, got %d", len(original.Skills), len(restored.Skills))
	}
	if restored.Experience[0].Company != "TechCorp" {
		t.Fatalf("structured experience lost in round trip: %+v", restored.Experience[0])
	}
	if restored.Experience[1].Summary != original.Experience[1].Summary {
		t.Fatalf("summary experience lost in round trip: %+v", restored.Experience[1])
	}
}

func TestToMarkdown(t *testing.T) {
	t.Parallel()

	md := sampleProfile().ToMarkdown()

	if !strings.Contains(md, "# **Alex Candidate**") {
		t.Fatalf("expected name heading, got:\n%s", md)
	}
	if !strings.Contains(md, "## **SKILLS**") {
		t.Fatalf("expected skills section, got:\n%s", md)
	}
	if !strings.Contains(md, "Python | SQL") {
		t.Fatalf("skills should be pipe-joined, got:\n%s", md)
	}
	if !strings.Contains(md, "* Senior Dev at TechCorp (2021-2024)") {
		t.Fatalf("expected experience bullet, got:\n%s", md)
	}
	if strings.Contains(md, "CERTIFICATIONS") {
		t.Fatalf("empty sections should be omitted, got:\n%s", md)
	}
}

func TestToMarkdownMissingContactShowsNA(t *testing.T) {
	t.Parallel()

	md := (&Profile{Name: "Alex"}).ToMarkdown()
	if !strings.Contains(md, "**N/A** | **N/A**") {
		t.Fatalf("expected N/A placeholders, got:\n%s", md)
	}
}

func TestToHTMLEscapesContent(t *testing.T) {
	t.Parallel()

	p := &Profile{
		Name:   "Alex <script>",
		Skills: []string{"C++ & Go"},
	}

	out := p.ToHTML()
	if strings.Contains(out, "<script>") {
		t.Fatalf("name must be escaped, got:\n%s", out)
	}
	if !strings.Contains(out, "C++ &amp; Go") {
		t.Fatalf("list entries must be escaped, got:\n%s", out)
	}
}

func TestToExcel(t *testing.T) {
	t.Parallel()

	data, err := sampleProfile().ToExcel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook should be readable: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Profile Data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) < 2 {
		t.Fatalf("expected header plus data rows, got %d", len(rows))
	}
	if rows[0][0] != "Category" || rows[0][1] != "Details" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "Name" || rows[1][1] != "Alex Candidate" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
}
