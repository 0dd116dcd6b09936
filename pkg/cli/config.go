package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathwise-dev/pathwise/pkg/adapter"
	"github.com/pathwise-dev/pathwise/pkg/catalog"
	"github.com/pathwise-dev/pathwise/pkg/intent"
	"github.com/pathwise-dev/pathwise/pkg/memory"
	"github.com/pathwise-dev/pathwise/pkg/rules"
	"github.com/pathwise-dev/pathwise/pkg/usecase/advisor"
	"github.com/pathwise-dev/pathwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// config holds configuration values shared across commands
type config struct {
	logLevel    string
	catalogPath string
	profilePath string

	// Conversation memory
	memoryWindow int64
	sessionTTL   time.Duration

	// Generative provider
	geminiProject  string
	geminiLocation string
	geminiModel    string
	genTimeout     time.Duration
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("PATHWISE_LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Path to career catalog CSV",
			Value:       "data/careers.csv",
			Sources:     cli.EnvVars("PATHWISE_CATALOG"),
			Destination: &cfg.catalogPath,
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to YAML assistant profile (persona, fallback replies)",
			Sources:     cli.EnvVars("PATHWISE_PROFILE"),
			Destination: &cfg.profilePath,
		},
		&cli.IntFlag{
			Name:        "memory-window",
			Usage:       "Maximum turns retained per session",
			Value:       memory.DefaultWindow,
			Sources:     cli.EnvVars("PATHWISE_MEMORY_WINDOW"),
			Destination: &cfg.memoryWindow,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle lifetime of a session",
			Value:       memory.DefaultTTL,
			Sources:     cli.EnvVars("PATHWISE_SESSION_TTL"),
			Destination: &cfg.sessionTTL,
		},
	}
}

// llmFlags returns flags for the generative provider with destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini (empty disables the generative path)",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Generative model name",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
		&cli.DurationFlag{
			Name:        "generate-timeout",
			Usage:       "Timeout for one generative call",
			Value:       advisor.DefaultGenerateTimeout,
			Sources:     cli.EnvVars("PATHWISE_GENERATE_TIMEOUT"),
			Destination: &cfg.genTimeout,
		},
	}
}

// newCatalog loads the career catalog; failure is fatal at start-up
func (cfg *config) newCatalog() (*catalog.Catalog, error) {
	if cfg.catalogPath == "" {
		return nil, goerr.New("catalog path is required")
	}
	return catalog.LoadFile(cfg.catalogPath)
}

// newResponder creates the Gemini responder, or nil when no project is
// configured: the orchestrator then serves deterministic fallbacks only.
func (cfg *config) newResponder(ctx context.Context) (adapter.Responder, error) {
	if cfg.geminiProject == "" {
		logging.From(ctx).Warn("gemini-project not set, generative path disabled")
		return nil, nil
	}

	gemini, err := adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
		adapter.WithGenerativeModel(cfg.geminiModel))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create gemini responder")
	}
	return gemini, nil
}

// newOrchestrator wires the full advisory pipeline
func (cfg *config) newOrchestrator(ctx context.Context) (*advisor.Orchestrator, *catalog.Catalog, error) {
	c, err := cfg.newCatalog()
	if err != nil {
		return nil, nil, err
	}

	responder, err := cfg.newResponder(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := []advisor.Option{
		advisor.WithGenerateTimeout(cfg.genTimeout),
	}
	if cfg.profilePath != "" {
		profile, err := loadProfile(cfg.profilePath)
		if err != nil {
			return nil, nil, err
		}
		if profile.Persona != "" {
			opts = append(opts, advisor.WithPersona(profile.Persona))
		}
		opts = append(opts, advisor.WithFallbackReplies(profile.FallbackReplies))
	}

	orch := advisor.New(advisor.NewInput{
		Classifier: intent.New(),
		Rules:      rules.New(c),
		Memory: memory.New(
			memory.WithWindow(int(cfg.memoryWindow)),
			memory.WithTTL(cfg.sessionTTL),
		),
		Responder: responder,
	}, opts...)

	return orch, c, nil
}

func (cfg *config) setupLogger(ctx context.Context) context.Context {
	logger := logging.New(cfg.logLevel, nil)
	logging.SetDefault(logger)
	return logging.With(ctx, logger)
}
