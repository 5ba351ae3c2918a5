package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigell/careerdash/internal/ai"
	"github.com/spigell/careerdash/internal/ai/gemini"
	"github.com/spigell/careerdash/internal/ai/mock"
	"github.com/spigell/careerdash/internal/interview"
	"github.com/spigell/careerdash/internal/jobs"
	"github.com/spigell/careerdash/internal/logger"
	"github.com/spigell/careerdash/internal/secrets"
	"github.com/spigell/careerdash/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptParseResume = "Parse resume"
	PromptManageJobs  = "Manage job descriptions"
	PromptBatchMatch  = "Batch match against saved JDs"
	PromptFilterJobs  = "Filter job descriptions"
	PromptInterview   = "Interview practice"
	PromptChat        = "Chatbot (Q&A)"
	PromptExportCV    = "Export CV"
	PromptExit        = "Exit"
	PromptBack        = "back"

	// Multiline input is terminated by this marker on its own line.
	inputTerminator = "EOF"
)

var errExit = errors.New("exit requested")

var dashboardPrompt = promptui.Select{
	Label: "Candidate dashboard",
	Items: []string{
		PromptParseResume, PromptManageJobs, PromptBatchMatch, PromptFilterJobs,
		PromptInterview, PromptChat, PromptExportCV, PromptExit,
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive careerdash session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// run is the main command for the cli. One invocation is one session; nothing
// survives the process.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building a generation client", zap.Error(err))
	}

	logger.Info("starting the careerdash session",
		zap.String("version", version),
		zap.String("provider", config.AI.Provider),
		zap.String("model", generator.Model()),
	)

	sess := session.New(generator, logger, config.AI.MaxLogLength)

	for {
		_, action, err := dashboardPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, sess, config, logger); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "session closed"))
				return
			}
			fmt.Printf("error: %v\n", err)
		}
	}
}

func handleAction(ctx context.Context, action string, sess *session.Session, config *Config, logger *zap.Logger) error {
	switch action {
	case PromptParseResume:
		return parseResume(ctx, sess)
	case PromptManageJobs:
		return manageJobs(ctx, sess)
	case PromptBatchMatch:
		return batchMatch(ctx, sess)
	case PromptFilterJobs:
		return filterJobs(sess)
	case PromptInterview:
		return interviewPractice(ctx, sess)
	case PromptChat:
		return chatQA(ctx, sess)
	case PromptExportCV:
		return exportCV(sess, config, logger)
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "mock":
		return mock.NewGenerator(), nil
	case "gemini":
		if cfg.Gemini == nil {
			return nil, fmt.Errorf("gemini configuration is required when the gemini provider is selected")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		genLogger := logger.With(
			zap.String("provider", "gemini"),
			zap.String("model", cfg.Gemini.Model),
		)

		return gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func parseResume(ctx context.Context, sess *session.Session) error {
	methodPrompt := promptui.Select{
		Label: "Resume input method",
		Items: []string{"Upload file", "Paste text", PromptBack},
	}

	_, method, err := methodPrompt.Run()
	if err != nil {
		return err
	}

	switch method {
	case PromptBack:
		return nil
	case "Upload file":
		path, err := (&promptui.Prompt{Label: "Path to resume file"}).Run()
		if err != nil {
			return err
		}
		if err := sess.LoadResumeFile(ctx, path); err != nil {
			return err
		}
	case "Paste text":
		fmt.Printf("Paste the resume text, then a line containing only %s:\n", inputTerminator)
		text, err := readMultiline(os.Stdin)
		if err != nil {
			return err
		}
		if err := sess.LoadResumeText(ctx, text, "Pasted Text"); err != nil {
			return err
		}
	}

	fmt.Printf("Loaded profile for %s\n", sess.Profile.Name)
	return nil
}

func manageJobs(ctx context.Context, sess *session.Session) error {
	for {
		menu := promptui.Select{
			Label: fmt.Sprintf("Job descriptions (%d saved)", sess.Jobs.Len()),
			Items: []string{"Add from text", "Add from URL", "List", "Delete one", "Clear all", PromptBack},
		}

		_, action, err := menu.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptBack:
			return nil
		case "Add from text":
			fmt.Printf("Paste the job description, then a line containing only %s:\n", inputTerminator)
			text, err := readMultiline(os.Stdin)
			if err != nil {
				return err
			}
			jd, err := sess.AddJobText(ctx, text)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (role: %s, type: %s)\n", jd.Name, jd.Role, jd.JobType)
		case "Add from URL":
			url, err := (&promptui.Prompt{Label: "Job posting URL"}).Run()
			if err != nil {
				return err
			}
			jd, err := sess.AddJobURL(ctx, url)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s\n", jd.Name)
		case "List":
			for i, jd := range sess.Jobs.Items() {
				fmt.Printf("%d. %s | role: %s | type: %s | skills: %s\n",
					i+1, jd.Name, jd.Role, jd.JobType, strings.Join(jd.KeySkills, ", "))
			}
		case "Delete one":
			jd, err := selectJob(sess)
			if err != nil || jd == nil {
				return err
			}
			sess.Jobs.Remove(jd.ID)
			fmt.Printf("Deleted %s\n", jd.Name)
		case "Clear all":
			sess.ClearJobs()
			fmt.Println("All job descriptions cleared.")
		}
	}
}

func batchMatch(ctx context.Context, sess *session.Session) error {
	if sess.Jobs.Len() == 0 {
		return fmt.Errorf("no job descriptions saved; add them first")
	}

	results, err := sess.BatchMatch(ctx, sess.Jobs.Items())
	if err != nil {
		return err
	}

	fmt.Println("Ranked match results:")
	for _, report := range results {
		score := "unparseable"
		if report.Scored() {
			score = fmt.Sprintf("%d/10", report.OverallScore)
		}
		fmt.Printf("Rank %d | %s | score: %s\n", report.Rank, report.JDName, score)
	}

	showPrompt := promptui.Select{
		Label: "Show detailed reports?",
		Items: []string{"Yes", "No"},
	}
	if _, show, err := showPrompt.Run(); err == nil && show == "Yes" {
		for _, report := range results {
			fmt.Printf("\n--- %s (rank %d) ---\n%s\n", report.JDName, report.Rank, report.Text)
		}
	}

	return nil
}

func filterJobs(sess *session.Session) error {
	if sess.Jobs.Len() == 0 {
		return fmt.Errorf("no job descriptions saved; add them first")
	}

	role, err := (&promptui.Prompt{Label: "Role (empty for all)"}).Run()
	if err != nil {
		return err
	}
	jobType, err := (&promptui.Prompt{Label: "Job type (empty for all)"}).Run()
	if err != nil {
		return err
	}
	skills, err := (&promptui.Prompt{Label: "Required skills, comma-separated (empty for all)"}).Run()
	if err != nil {
		return err
	}

	criteria := jobs.Criteria{Role: strings.TrimSpace(role), JobType: strings.TrimSpace(jobType)}
	for _, skill := range strings.Split(skills, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			criteria.Skills = append(criteria.Skills, skill)
		}
	}

	matched := sess.Jobs.Filter(criteria)
	fmt.Printf("%d matching job description(s):\n", len(matched))
	for _, jd := range matched {
		fmt.Printf("- %s | role: %s | type: %s\n", jd.Name, jd.Role, jd.JobType)
	}

	return nil
}

func interviewPractice(ctx context.Context, sess *session.Session) error {
	sectionPrompt := promptui.Select{
		Label: "Resume section to focus on",
		Items: interview.Sections,
	}

	_, section, err := sectionPrompt.Run()
	if err != nil {
		return err
	}

	items, err := sess.Interview.Generate(ctx, sess.Profile, section)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d questions.\n", len(items))
	for i, item := range items {
		fmt.Printf("\nQuestion %d [%s]: %s\n", i+1, item.Level, item.Question)
		answer, err := (&promptui.Prompt{Label: fmt.Sprintf("Your answer for Q%d", i+1)}).Run()
		if err != nil {
			return err
		}
		if err := sess.Interview.Answer(i, answer); err != nil {
			return err
		}
	}

	report, err := sess.Interview.Evaluate(ctx, sess.Profile)
	if err != nil {
		var missing *interview.MissingAnswersError
		if errors.As(err, &missing) {
			return fmt.Errorf("please answer all questions before evaluation: %w", missing)
		}
		return err
	}

	fmt.Printf("\nEvaluation report:\n%s\n", report)
	return nil
}

func chatQA(ctx context.Context, sess *session.Session) error {
	topicPrompt := promptui.Select{
		Label: "Chat about",
		Items: []string{"Resume", "Job description", PromptBack},
	}

	_, topic, err := topicPrompt.Run()
	if err != nil {
		return err
	}

	switch topic {
	case PromptBack:
		return nil
	case "Resume":
		question, err := (&promptui.Prompt{Label: "Your question"}).Run()
		if err != nil {
			return err
		}
		answer, err := sess.AskResume(ctx, question)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", answer)
	case "Job description":
		jd, err := selectJob(sess)
		if err != nil || jd == nil {
			return err
		}
		question, err := (&promptui.Prompt{Label: "Your question"}).Run()
		if err != nil {
			return err
		}
		answer, err := sess.AskJob(ctx, jd.Name, question)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", answer)
	}

	return nil
}

func exportCV(sess *session.Session, config *Config, logger *zap.Logger) error {
	if sess.Profile == nil || !sess.Profile.Loaded() {
		return fmt.Errorf("no profile loaded; parse a resume first")
	}

	dir := config.ExportDir
	if dir == "" {
		dir = "."
	}
	base := strings.ReplaceAll(sess.Profile.Name, " ", "_")

	wrapped, err := sess.Profile.ToJSON()
	if err != nil {
		return err
	}
	excel, err := sess.Profile.ToExcel()
	if err != nil {
		return err
	}

	exports := []struct {
		suffix string
		data   []byte
	}{
		{"_profile.json", []byte(wrapped)},
		{"_CV.md", []byte(sess.Profile.ToMarkdown())},
		{"_CV.html", []byte(sess.Profile.ToHTML())},
		{"_Data.xlsx", excel},
	}

	for _, export := range exports {
		path := filepath.Join(dir, base+export.suffix)
		if err := os.WriteFile(path, export.data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("exported", zap.String("filename", path))
	}

	return nil
}

func selectJob(sess *session.Session) (*jobs.JobDescription, error) {
	if sess.Jobs.Len() == 0 {
		return nil, fmt.Errorf("no job descriptions saved")
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job description",
		Items: append(sess.Jobs.Names(), PromptBack),
	}

	_, name, err := jobPrompt.Run()
	if err != nil {
		return nil, err
	}
	if name == PromptBack {
		return nil, nil
	}

	return sess.Jobs.FindByName(name), nil
}

func readMultiline(r *os.File) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == inputTerminator {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	return strings.Join(lines, "\n"), nil
}
