package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auto_linkedin_poster/config"
	"auto_linkedin_poster/generator"
	"auto_linkedin_poster/imagegen"
	"auto_linkedin_poster/logger"
	"auto_linkedin_poster/pipeline"
	"auto_linkedin_poster/publisher"
	"auto_linkedin_poster/topics"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "auto-linkedin-poster",
		Short: "Generate and publish one LinkedIn post",
		Long: "auto-linkedin-poster picks a topic, drafts a post with an LLM, renders up to three " +
			"illustrations and publishes the result to LinkedIn. Configuration comes from the " +
			"environment and .env files.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runOnce(ctx, cmd)
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "auto-linkedin-poster %s\n", Version)
		},
	})
	return root
}

func runOnce(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting run",
		logger.String("provider", cfg.LLM.Provider),
		logger.String("model", cfg.LLM.Model),
		logger.Bool("images", cfg.Images.Active()))
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Result.ID)
	return nil
}

// buildRunner wires the configured components into a pipeline. It makes no
// network calls.
func buildRunner(cfg *config.Config, log logger.Logger) (*pipeline.Runner, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	llm, err := generator.NewLLM(generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}

	style := generator.DefaultStyle()
	if cfg.Content.Persona != "" {
		style.Persona = cfg.Content.Persona
	}
	if cfg.Content.Audience != "" {
		style.Audience = cfg.Content.Audience
	}
	style.MaxTokens = cfg.LLM.MaxTokens
	style.Temperature = cfg.LLM.Temperature

	agent, err := generator.NewAgent(llm, style, log.With(logger.String("component", "generator")))
	if err != nil {
		return nil, err
	}

	candidates := cfg.Content.Topics
	if len(candidates) == 0 {
		candidates = topics.Default
	}
	selector, err := topics.NewSelector(candidates, rnd)
	if err != nil {
		return nil, fmt.Errorf("build topic selector: %w", err)
	}

	pub, err := publisher.New(publisher.Options{
		APIURL:      cfg.LinkedIn.APIURL,
		AccessToken: cfg.LinkedIn.AccessToken,
		AuthorURN:   cfg.LinkedIn.AuthorURN(),
	}, log.With(logger.String("component", "publisher")))
	if err != nil {
		return nil, fmt.Errorf("build publisher: %w", err)
	}

	deps := pipeline.Deps{
		Topics:    selector,
		Writer:    agent,
		Publisher: pub,
	}
	opts := pipeline.Options{ImageDir: cfg.Images.Dir}
	if cfg.Images.Active() {
		opts.ImageCount = cfg.Images.Count
		deps.Renderer = imagegen.NewRenderer(cfg.Images.BaseURL, log.With(logger.String("component", "imagegen")))
		deps.Uploader = pub
		switch cfg.Images.PromptMode {
		case config.PromptModeCombinatorial:
			deps.Prompts = imagegen.NewCombinatorial(rnd)
		case config.PromptModeLLM:
			deps.Prompts = agent
		default:
			return nil, errors.New("unknown image prompt mode " + cfg.Images.PromptMode)
		}
	}

	return pipeline.New(deps, opts, log)
}
