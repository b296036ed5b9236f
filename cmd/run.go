package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/profile"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
	"github.com/spigell/resume-screener/internal/similarity"
	"github.com/spigell/resume-screener/internal/skills"
	"github.com/spigell/resume-screener/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptReport      = "Print report"
	PromptDumpToFile  = "Dump screenings to file"
	PromptSaveToStore = "Save screenings to store"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptReport, PromptDumpToFile, PromptSaveToStore, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Screen the configured resumes against the job description",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report and save without asking what to do")
	runCmd.Flags().StringP("skills-file", "s", "", "CSV file with a skill column. Default is the built-in vocabulary.")

	viper.BindPFlag("skills-file", runCmd.Flags().Lookup("skills-file"))
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

	logger.Info("starting the resume-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if len(config.Resumes) == 0 {
		logger.Fatal("at least one resume file is required under the resumes key")
	}

	dict, err := skills.Load(viper.GetString("skills-file"))
	if err != nil {
		var confErr *skills.ConfigError
		if errors.As(err, &confErr) {
			logger.Fatal("loading the skill dictionary",
				zap.Error(err),
				zap.String("hint", "point skills-file at a CSV with a skill column or leave it unset"),
			)
		}
		logger.Fatal("loading the skill dictionary", zap.Error(err))
	}

	logger.Info("loaded the skill dictionary", zap.Int("skills", len(dict)))

	jobText := readJobDescription(config, logger)

	analyzer := &screening.Analyzer{
		Dictionary: dict,
		Tfidf:      similarity.TFIDF{},
		Logger:     logger,
	}

	if embedder := prepareEmbedder(ctx, config.AI, logger); embedder != nil {
		analyzer.Embedding = similarity.NewEmbeddingScorer(embedder)
	}

	results := screen(ctx, analyzer, config.Resumes, jobText, logger)

	results.SortByFit()

	if config.MinimumFitScore > 0 {
		dropped := results.MinFit(config.MinimumFitScore)
		if len(dropped) > 0 {
			logger.Info("dropping resumes below the fit threshold",
				zap.Float64("minimum_fit_score", config.MinimumFitScore),
				zap.Strings("dropped", dropped),
				zap.Int("left", results.Len()),
			)
		}
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes left to report"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := handleAction(ctx, PromptReport, logger, config, results); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if config.Store != nil && config.Store.Enabled {
			if err := handleAction(ctx, PromptSaveToStore, logger, config, results); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, logger, config, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, logger *zap.Logger, config *Config, results *screening.Screenings) error {
	switch action {
	case PromptReport:
		pretty, _ := json.MarshalIndent(results.Report(), "", "  ")
		logger.Info(string(pretty), zap.Int("screenings count", results.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptSaveToStore:
		return saveToStore(ctx, logger, config, results)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// screen extracts text and profile fields from every resume file and analyzes
// it against the job description. Extraction failures degrade to an empty
// document so that a corrupt file still produces a (zero) score.
func screen(ctx context.Context, analyzer *screening.Analyzer, files []string, jobText string, logger *zap.Logger) *screening.Screenings {
	results := &screening.Screenings{}

	for _, path := range files {
		text, err := extract.FromFile(path)
		if err != nil {
			logger.Warn("text extraction failed, scoring an empty document",
				zap.String("file", path),
				zap.Error(err),
			)
			text = ""
		}

		result := analyzer.Analyze(ctx, text, jobText)

		logger.Info("resume screened",
			zap.String("file", path),
			zap.Float64("job_fit_percent", result.JobFitPercent),
			zap.Int("skills_found", len(result.ExtractedSkills)),
			zap.Int("skills_matched", len(result.MatchedSkills)),
		)

		results.Items = append(results.Items, &screening.Screening{
			File:    path,
			Profile: profile.Extract(text),
			Result:  result,
		})
	}

	return results
}

func readJobDescription(config *Config, logger *zap.Logger) string {
	if strings.TrimSpace(config.JobFile) == "" {
		logger.Info("no job description configured, falling back to skill-count scoring")
		return ""
	}

	data, err := os.ReadFile(config.JobFile)
	if err != nil {
		logger.Warn("reading the job description failed, falling back to skill-count scoring",
			zap.String("file", config.JobFile),
			zap.Error(err),
		)
		return ""
	}

	return string(data)
}

// prepareEmbedder builds the Gemini embedding handle once per run; the
// analyzer reuses it for every resume. A missing key or disabled section only
// downgrades the blend, it never stops the screening.
func prepareEmbedder(ctx context.Context, config *AIConfig, logger *zap.Logger) *gemini.Client {
	if config == nil || !config.Enabled {
		return nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("skipping embedding scorer", zap.String("reason", "unsupported ai provider"), zap.String("provider", config.Provider))
		return nil
	}

	if config.Gemini == nil {
		logger.Warn("skipping embedding scorer", zap.String("reason", "gemini configuration is required"))
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Warn("skipping embedding scorer",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY"),
		)
		return nil
	}

	client, err := gemini.New(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		logger.Warn("skipping embedding scorer", zap.Error(err))
		return nil
	}

	logger.Info("embedding scorer enabled",
		zap.String("provider", "gemini"),
		zap.String("model", client.Model()),
	)

	return client
}

func saveToStore(ctx context.Context, logger *zap.Logger, config *Config, results *screening.Screenings) error {
	if config.Store == nil || !config.Store.Enabled {
		return errors.New("store is not enabled in the configuration")
	}

	dsn := strings.TrimSpace(config.Store.DSN)
	if dsn == "" {
		dsn = strings.TrimSpace(viper.GetString("store.dsn"))
	}
	if dsn == "" {
		return errors.New("store DSN is not configured (set store.dsn or DATABASE_URL)")
	}

	st, err := store.Open(ctx, dsn)
	if err != nil {
		return fmt.Errorf("opening the store: %w", err)
	}
	defer st.Close()

	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("initializing the store: %w", err)
	}

	for _, item := range results.Items {
		record := &store.Record{
			File:   item.File,
			JobFit: item.Result.JobFitPercent,
		}
		if item.Profile != nil {
			record.Name = item.Profile.Name
			record.Email = item.Profile.Email
			record.Phone = item.Profile.Phone
			record.Education = item.Profile.Education
		}
		for _, m := range item.Result.ExtractedSkills {
			record.Skills = append(record.Skills, m.Skill)
		}

		id, err := st.Save(ctx, record)
		if err != nil {
			return fmt.Errorf("saving %s: %w", item.File, err)
		}

		logger.Info("screening saved",
			zap.String("file", item.File),
			zap.String("id", id),
		)
	}

	logger.Info("successfully saved screenings", zap.Int("count", results.Len()))
	return nil
}
