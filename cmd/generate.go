package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/abhisek/interviewkit/internal/config"
	"github.com/abhisek/interviewkit/internal/interviewkit"
	"github.com/abhisek/interviewkit/internal/llm"
	"github.com/abhisek/interviewkit/internal/render"
	"github.com/abhisek/interviewkit/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an interview kit for a job description",
	Long: `Generate technical interview questions with model answers.

The job description comes from a file, an http(s) URL or stdin ("-"), or
inline via --job-description-text. A whole request can also be given as a
JSON file with --input using the fields jobDescription, unstopProfileLink,
candidateResumeDataUri, candidateResumeFileName and
candidateExperienceContext. Flags override values from the file.

Every LLM request is recorded in the local database; inspect it with
"interviewkit llm list".`,
	Example: `  interviewkit generate --job-description jd.md --profile https://unstop.com/u/jane
  curl -s https://example.com/jd.txt | interviewkit generate -j - --profile https://unstop.com/u/jane --resume cv.pdf --format json`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("input", "", "JSON request file")
	f.StringP("job-description", "j", "", `Job description source: file path, http(s) URL or "-" for stdin`)
	f.String("job-description-text", "", "Job description text")
	f.StringP("profile", "p", "", "Candidate profile link")
	f.StringP("resume", "r", "", "Candidate resume file (.pdf, .docx, .txt, .md)")
	f.StringP("experience", "e", "", "Candidate experience context")
	f.String("settings", "", "YAML settings file")
	f.String("count-policy", "", "What to do when the model returns the wrong number of questions: trust, strict or truncate")
	f.StringP("format", "f", "text", "Output format: text, json or yaml")
	f.StringP("out", "o", "", "Write the kit to a file instead of stdout")
	f.Bool("no-record", false, "Do not record LLM requests in the database")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	inputFile, _ := flags.GetString("input")
	jdSource, _ := flags.GetString("job-description")
	jdText, _ := flags.GetString("job-description-text")
	profile, _ := flags.GetString("profile")
	resumePath, _ := flags.GetString("resume")
	experience, _ := flags.GetString("experience")
	settingsPath, _ := flags.GetString("settings")
	countPolicy, _ := flags.GetString("count-policy")
	formatVal, _ := flags.GetString("format")
	outPath, _ := flags.GetString("out")
	noRecord, _ := flags.GetBool("no-record")

	format, err := render.ParseFormat(formatVal)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	settings := &config.Settings{}
	if settingsPath != "" {
		if settings, err = config.Load(settingsPath); err != nil {
			return err
		}
	}

	genCfg := interviewkit.DefaultConfig()
	if err := settings.ApplyGeneration(&genCfg); err != nil {
		return err
	}
	if countPolicy != "" {
		if genCfg.CountPolicy, err = interviewkit.ParseCountPolicy(countPolicy); err != nil {
			return err
		}
	}

	input, err := buildInput(ctx, inputFlags{
		inputFile:  inputFile,
		jdSource:   jdSource,
		jdText:     jdText,
		profile:    profile,
		resumePath: resumePath,
		experience: experience,
	}, cmd.InOrStdin(), &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}

	llmCfg, err := resolveLLMConfig(settings)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	var eventRepo store.EventRepo
	if !noRecord {
		s, err := openStore(cmd)
		if err != nil {
			logger.Warn("LLM requests will not be recorded", zap.Error(err))
		} else {
			defer s.Close()
			eventRepo = s.EventRepo()
		}
	}

	provider, err := llm.NewProvider(ctx, llmCfg, eventRepo, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	logger.Info("generating interview kit",
		zap.String("model", provider.ModelID()),
		zap.Int("questions", genCfg.QuestionCount),
		zap.Bool("resume", input.CandidateResumeDataURI != ""),
	)

	kit, err := interviewkit.New(provider, genCfg, logger).Generate(ctx, input)
	if err != nil {
		return describeGenerateError(err)
	}

	return writeKit(cmd.OutOrStdout(), outPath, kit, format)
}

// resolveLLMConfig combines the environment with the settings file. A
// provider named in the settings file may rescue an environment that
// names none.
func resolveLLMConfig(settings *config.Settings) (llm.Config, error) {
	cfg, resolveErr := llm.ResolveConfig()
	if resolveErr != nil {
		cfg = llm.ConfigFromEnv()
	}
	if err := settings.ApplyLLM(&cfg); err != nil {
		return llm.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		if resolveErr != nil {
			return llm.Config{}, resolveErr
		}
		return llm.Config{}, err
	}
	return cfg, nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func describeGenerateError(err error) error {
	var (
		rateErr    *llm.ErrRateLimit
		invalidErr *llm.ErrInvalidResponse
		tokensErr  *llm.ErrMaxTokensExceeded
		refusedErr *llm.ErrRefused
		countErr   *interviewkit.CountError
	)
	switch {
	case errors.Is(err, interviewkit.ErrEmptyGeneration):
		return fmt.Errorf("%w; try again or switch model", err)
	case errors.As(err, &rateErr):
		if rateErr.RetryAfter > 0 {
			return fmt.Errorf("provider rate limit hit, retry after %s: %w", rateErr.RetryAfter, err)
		}
		return fmt.Errorf("provider rate limit hit, wait a minute and retry: %w", err)
	case errors.As(err, &refusedErr):
		return fmt.Errorf("%w; review the job description for content the provider blocks", err)
	case errors.As(err, &tokensErr):
		return fmt.Errorf("%w; raise generation.max_tokens in the settings file", err)
	case errors.As(err, &invalidErr):
		return fmt.Errorf("model output did not match the kit schema: %w", err)
	case errors.As(err, &countErr):
		return fmt.Errorf("%w; use --count-policy trust or truncate to accept it", err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("interrupted: %w", err)
	}
	return err
}

func writeKit(stdout io.Writer, outPath string, kit *interviewkit.Kit, format render.Format) error {
	if outPath == "" {
		return render.Write(stdout, kit, format)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := render.Write(f, kit, format); err != nil {
		f.Close()
		return fmt.Errorf("write kit: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d questions to %s\n", len(kit.Questions), outPath)
	return nil
}
