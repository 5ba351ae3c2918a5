package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/careerdash/internal/ai/mock"
	"go.uber.org/zap"
)

const resumeText = `Alex Candidate
alex@example.com
Skills: Python, SQL, Project Management`

func newTestSession() (*Session, *mock.Generator) {
	generator := mock.NewGenerator()
	return New(generator, zap.NewNop(), 0), generator
}

func TestLoadResumeText(t *testing.T) {
	sess, _ := newTestSession()

	if err := sess.LoadResumeText(context.Background(), resumeText, "Pasted Text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sess.Profile.Loaded() {
		t.Fatalf("expected a loaded profile")
	}
	if sess.Profile.Name != "Alex Candidate" {
		t.Fatalf("unexpected name: %q", sess.Profile.Name)
	}
	if sess.ResumeText != resumeText {
		t.Fatalf("resume text should be retained")
	}
}

func TestLoadResumeFile(t *testing.T) {
	sess, _ := newTestSession()

	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte(resumeText), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sess.LoadResumeFile(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Profile.Name != "Alex Candidate" {
		t.Fatalf("unexpected name: %q", sess.Profile.Name)
	}
}

func TestLoadResumeFileExtractionFailure(t *testing.T) {
	sess, generator := newTestSession()

	path := filepath.Join(t.TempDir(), "empty_resume.pdf")
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := sess.LoadResumeFile(context.Background(), path)
	if err == nil {
		t.Fatalf("expected an error")
	}

	if !sess.Profile.Failed() {
		t.Fatalf("expected a failed profile marker")
	}
	if sess.Profile.Name != "empty_resume" {
		t.Fatalf("failed profile should be named after the file, got %q", sess.Profile.Name)
	}
	if generator.Calls != 0 {
		t.Fatalf("expected no generation calls, got %d", generator.Calls)
	}
}

func TestLoadResumeFileMissing(t *testing.T) {
	sess, _ := newTestSession()

	if err := sess.LoadResumeFile(context.Background(), "/does/not/exist.txt"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestReloadResetsDerivedState(t *testing.T) {
	sess, _ := newTestSession()
	ctx := context.Background()

	if err := sess.LoadResumeText(ctx, resumeText, "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.AddJobText(ctx, "**Role:** Dev\nPython required."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.BatchMatch(ctx, sess.Jobs.Items()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.Interview.Generate(ctx, sess.Profile, "skills"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sess.LoadResumeText(ctx, resumeText+"\nan extra line", "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Matches != nil {
		t.Fatalf("match results must be discarded on reload")
	}
	if len(sess.Interview.Items()) != 0 {
		t.Fatalf("interview cycle must be discarded on reload")
	}
	if sess.Jobs.Len() != 1 {
		t.Fatalf("stored job descriptions must survive a reload")
	}
}

func TestAddJobText(t *testing.T) {
	sess, _ := newTestSession()

	jd, err := sess.AddJobText(context.Background(), "**Role:** Dev\nFull-time. Python required.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(jd.Name, "JD: General Analyst (") {
		t.Fatalf("unexpected display name: %q", jd.Name)
	}
	if jd.Role != "General Analyst" {
		t.Fatalf("unexpected role: %q", jd.Role)
	}
	if sess.Jobs.Len() != 1 {
		t.Fatalf("expected 1 stored job description, got %d", sess.Jobs.Len())
	}
}

func TestAddJobTextRejectsEmpty(t *testing.T) {
	sess, _ := newTestSession()

	if _, err := sess.AddJobText(context.Background(), "   "); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestAddJobURL(t *testing.T) {
	sess, _ := newTestSession()

	jd, err := sess.AddJobURL(context.Background(), "https://www.linkedin.com/jobs/view/data-engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(jd.Content, "Data Engineer") {
		t.Fatalf("synthesized body should carry the slug title, got:\n%s", jd.Content)
	}
}

func TestBatchMatch(t *testing.T) {
	sess, _ := newTestSession()
	ctx := context.Background()

	if _, err := sess.BatchMatch(ctx, nil); err == nil {
		t.Fatalf("expected an error without a profile")
	}

	if err := sess.LoadResumeText(ctx, resumeText, "resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sess.BatchMatch(ctx, sess.Jobs.Items()); err == nil {
		t.Fatalf("expected an error without job descriptions")
	}

	for _, body := range []string{"**Role:** Dev\nPython.", "**Role:** Analyst\nSQL."} {
		if _, err := sess.AddJobText(ctx, body); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	results, err := sess.BatchMatch(ctx, sess.Jobs.Items())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, report := range results {
		if !report.Scored() {
			t.Fatalf("expected a scored report, got %+v", report)
		}
		if report.Rank != 1 {
			t.Fatalf("identical scores must share rank 1, got %d", report.Rank)
		}
	}
	if len(sess.Matches) != 2 {
		t.Fatalf("results must be stored on the session")
	}
}

func TestClearJobsDropsMatches(t *testing.T) {
	sess, _ := newTestSession()
	ctx := context.Background()

	if err := sess.LoadResumeText(ctx, resumeText, "resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.AddJobText(ctx, "**Role:** Dev\nPython."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sess.BatchMatch(ctx, sess.Jobs.Items()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess.ClearJobs()

	if sess.Jobs.Len() != 0 {
		t.Fatalf("expected no stored job descriptions")
	}
	if sess.Matches != nil {
		t.Fatalf("match results must be discarded with the jobs")
	}
}

func TestAskResumeAndJob(t *testing.T) {
	sess, _ := newTestSession()
	ctx := context.Background()

	if _, err := sess.AskResume(ctx, "anything"); err == nil {
		t.Fatalf("expected an error without a profile")
	}

	if err := sess.LoadResumeText(ctx, resumeText, "resume"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answer, err := sess.AskResume(ctx, "What does the candidate know?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer == "" {
		t.Fatalf("expected an answer")
	}

	if _, err := sess.AskJob(ctx, "no such jd", "anything"); err == nil {
		t.Fatalf("expected an error for an unknown job description")
	}

	jd, err := sess.AddJobText(ctx, "**Role:** Dev\nPython.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sess.AskJob(ctx, jd.Name, "What is required?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
