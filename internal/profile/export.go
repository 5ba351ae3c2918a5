package profile

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/spigell/careerdash/internal/extract"
	"github.com/xuri/excelize/v2"
)

// sectionOrder is the fixed export ordering for list sections.
var sectionOrder = []struct {
	title string
	lines func(*Profile) []string
}{
	{"Skills", func(p *Profile) []string { return p.Skills }},
	{"Experience", func(p *Profile) []string { return p.ExperienceLines() }},
	{"Education", func(p *Profile) []string { return p.Education }},
	{"Certifications", func(p *Profile) []string { return p.Certifications }},
	{"Projects", func(p *Profile) []string { return p.Projects }},
	{"Strengths", func(p *Profile) []string { return p.Strengths }},
}

// ToJSON renders the profile verbatim, wrapped in the explicit JSON markers so
// the export can be fed straight back through the compiler's direct-parse
// shortcut.
func (p *Profile) ToJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	return fmt.Sprintf("%s\n%s\n%s", extract.BeginJSONMarker, data, extract.EndJSONMarker), nil
}

// ToMarkdown renders a CV-like markdown document.
func (p *Profile) ToMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# **%s**\n\n", p.Name)
	fmt.Fprintf(&b, "**%s** | **%s**\n", orNA(p.Email), orNA(p.Phone))

	if p.LinkedIn != "" || p.GitHub != "" {
		fmt.Fprintf(&b, "%s | %s\n", orNA(p.LinkedIn), orNA(p.GitHub))
	}

	for _, section := range sectionOrder {
		lines := section.lines(p)
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## **%s**\n---\n", strings.ToUpper(section.title))
		if section.title == "Skills" {
			b.WriteString(strings.Join(lines, " | "))
			b.WriteString("\n")
			continue
		}
		for _, line := range lines {
			fmt.Fprintf(&b, "* %s\n", line)
		}
	}

	if p.PersonalSummary != "" {
		fmt.Fprintf(&b, "\n## **SUMMARY**\n---\n%s\n", p.PersonalSummary)
	}

	return b.String()
}

// ToHTML renders a simple print-oriented HTML document.
func (p *Profile) ToHTML() string {
	var b strings.Builder

	b.WriteString("<html><head><style>\n")
	b.WriteString("body { font-family: Arial, sans-serif; line-height: 1.6; padding: 20px; }\n")
	b.WriteString("h1 { border-bottom: 3px solid #ccc; padding-bottom: 5px; }\n")
	b.WriteString(".header { background-color: #f4f4f4; padding: 10px; border-radius: 5px; }\n")
	b.WriteString("</style><title>")
	b.WriteString(html.EscapeString(p.Name))
	b.WriteString("</title></head><body>\n")

	fmt.Fprintf(&b, "<div class=\"header\"><h1>%s</h1><p>Email: %s | Phone: %s</p></div>\n",
		html.EscapeString(p.Name), html.EscapeString(p.Email), html.EscapeString(p.Phone))

	for _, section := range sectionOrder {
		lines := section.lines(p)
		if len(lines) == 0 {
			continue
		}

		fmt.Fprintf(&b, "<div class=\"section\"><h2>%s</h2><ul>\n", section.title)
		for _, line := range lines {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(line))
		}
		b.WriteString("</ul></div>\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

// ToExcel renders the profile into a single-sheet workbook with
// Category/Details columns.
func (p *Profile) ToExcel() ([]byte, error) {
	book := excelize.NewFile()
	defer book.Close()

	const sheet = "Profile Data"
	if err := book.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	write := func(category, details string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &[]any{category, details}); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := write("Category", "Details"); err != nil {
		return nil, err
	}

	scalars := []struct{ category, value string }{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
	}
	for _, s := range scalars {
		if s.value == "" {
			continue
		}
		if err := write(s.category, s.value); err != nil {
			return nil, err
		}
	}

	for _, section := range sectionOrder {
		lines := section.lines(p)
		if len(lines) == 0 {
			continue
		}

		if err := write(section.title, fmt.Sprintf("(%d entries)", len(lines))); err != nil {
			return nil, err
		}
		for _, line := range lines {
			if err := write("", line); err != nil {
				return nil, err
			}
		}
	}

	if p.PersonalSummary != "" {
		if err := write("Personal Details", p.PersonalSummary); err != nil {
			return nil, err
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
