package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Kuldeep2thakur/depression/internal/infrastructure/config"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/logging"
	"github.com/Kuldeep2thakur/depression/internal/infrastructure/server"
)

var (
	hostFlag  string
	portFlag  int
	pagesFlag string
	mediaFlag string
	tableFlag string
	devFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Mind Check content server",
	Long: `Serves the Mind Check site: the static pages, the nature video with
HTTP range support, and scoring of the self-assessment quiz.

Configuration comes from environment variables; flags override them.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runServer,
}

func init() {
	bindFlags(rootCmd.Flags())
}

func bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&hostFlag, "host", "", "bind host (env HOST)")
	flags.IntVar(&portFlag, "port", 0, "bind port (env PORT)")
	flags.StringVar(&pagesFlag, "pages", "", "directory overriding the embedded pages (env PAGES_DIR)")
	flags.StringVar(&mediaFlag, "media", "", "path of the video asset (env MEDIA_PATH)")
	flags.StringVar(&tableFlag, "table", "", "YAML scoring table (env SCORING_TABLE)")
	flags.BoolVar(&devFlag, "dev", false, "development logging: console output at debug level (env LOG_DEV)")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	if flags.Changed("host") {
		cfg.Server.Host = hostFlag
	}
	if flags.Changed("port") {
		cfg.Server.Port = portFlag
	}
	if flags.Changed("pages") {
		cfg.Content.PagesDir = pagesFlag
	}
	if flags.Changed("media") {
		cfg.Media.Path = mediaFlag
	}
	if flags.Changed("table") {
		cfg.Scoring.TablePath = tableFlag
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = devFlag
		if devFlag {
			cfg.Logging.Level = "debug"
		}
	}
	return cfg.Validate()
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, cmd.Flags()); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// contextOrBackground keeps runServer usable when cobra has no context set.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
