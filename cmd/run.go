package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ankg/jobmatch/internal/ai/gemini"
	"github.com/ankg/jobmatch/internal/jsearch"
	"github.com/ankg/jobmatch/internal/logger"
	"github.com/ankg/jobmatch/internal/report"
	"github.com/ankg/jobmatch/internal/resume"
	"github.com/ankg/jobmatch/internal/scoring"
	"github.com/ankg/jobmatch/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport = "Show full report"
	PromptDumpToFile = "Dump report to file"
	PromptExit       = "Exit"

	defaultMaxJobs = 10
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobmatch main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("no-prompt", "y", false, "print the ranked summary and exit without the interactive menu")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobmatch", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Search == nil || strings.TrimSpace(config.Search.Query) == "" {
		logger.Fatal("a search query is required under search.query")
	}

	if config.Resume == nil || strings.TrimSpace(config.Resume.File) == "" {
		logger.Fatal("a resume file is required under resume.file")
	}

	resumeText, err := resume.Load(config.Resume.File)
	if err != nil {
		logger.Fatal("loading the resume",
			zap.Error(err),
			zap.String("file", config.Resume.File),
		)
	}

	logger.Info("loaded the resume",
		zap.String("file", config.Resume.File),
		zap.Int("characters", len(resumeText)),
	)

	jobs, err := getJobs(ctx, config, logger)
	if err != nil {
		logger.Fatal("getting live job postings", zap.Error(err))
	}

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found for the search"))
		return
	}

	engine, err := prepareEngine(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	records, err := engine.ScoreBatch(ctx, resumeText, toPostings(jobs))
	if err != nil {
		logger.Fatal("scoring the batch", zap.Error(err))
	}

	ranked := report.Build(jobs.Items, records)

	logger.Info("scored job postings", zap.Int("count", ranked.Len()))
	for _, line := range ranked.Summary() {
		logger.Info(line)
	}

	if cmd.Flag("no-prompt").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, ranked); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, ranked *report.Report) error {
	switch action {
	case PromptShowReport:
		pretty, _ := json.MarshalIndent(ranked, "", "  ")
		logger.Info(string(pretty), zap.Int("jobs", ranked.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := ranked.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// getJobs fetches the live postings matching the configured search, capped
// at max-jobs.
func getJobs(ctx context.Context, config *Config, logger *zap.Logger) (*jsearch.Jobs, error) {
	if config.JSearch == nil {
		config.JSearch = &JSearchConfig{}
	}

	keyFile := strings.TrimSpace(config.JSearch.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("jsearch.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "jsearch api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set jsearch.api-key-file or JSEARCH_API_KEY_FILE)", err)
	}

	js := jsearch.New(logger, apiKey, config.JSearch.Host)

	logger.Info("starting the search",
		zap.String("query", config.Search.Query),
		zap.String("location", config.Search.Location),
	)

	jobs, err := js.Search(ctx, config.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("getting job postings", zap.Int("count", jobs.Len()))

	maxJobs := config.MaxJobs
	if maxJobs <= 0 {
		maxJobs = defaultMaxJobs
	}
	jobs.Limit(maxJobs)

	return jobs, nil
}

func prepareEngine(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*scoring.Engine, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under ai.gemini")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	keyFile := strings.TrimSpace(cfg.Gemini.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:      apiKey,
		Model:       cfg.Gemini.Model,
		MaxAttempts: cfg.Gemini.MaxAttempts,
		Backoff:     time.Duration(cfg.Gemini.BackoffSeconds) * time.Second,
		Timeout:     time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	}, genLogger)
	if err != nil {
		return nil, err
	}

	return scoring.NewEngine(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

func toPostings(jobs *jsearch.Jobs) []scoring.JobPosting {
	postings := make([]scoring.JobPosting, 0, jobs.Len())
	for _, job := range jobs.Items {
		postings = append(postings, scoring.JobPosting{
			Title:       job.Title,
			Company:     job.Employer,
			Location:    job.Location(),
			Description: job.Description,
		})
	}
	return postings
}
