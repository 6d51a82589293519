package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/docut-go/internal/app"
	"github.com/samvad-hq/docut-go/internal/config"
	"github.com/samvad-hq/docut-go/internal/logger"
	"github.com/samvad-hq/docut-go/pkg/docut"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and maps the outcome to an exit code: 0 on success,
// 2 when the API answered with a failure result, 1 otherwise.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer logger.Close()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var apiErr *apiFailure
	if errors.As(err, &apiErr) {
		return 2
	}
	logger.ErrorObj("command failed", "error", err.Error())
	fmt.Fprintf(stderr, "docut: %v\n", err)
	return 1
}

// cli carries what every subcommand needs once flags are parsed.
type cli struct {
	cfg *config.Config
	log *logger.ZapLogger
	sdk *docut.SDK
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "docut",
		Short:         "Docut link shortener client",
		Long:          `Create, inspect and analyse Docut short links, import sitemaps and publish metrics snapshots.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Root().PersistentFlags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log, err := logger.Init(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			log.DebugObj("config loaded", "config", cfg.Redacted())

			c.cfg = cfg
			c.log = log
			c.sdk = app.NewSDK(cfg, log)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("base-url", "", "Docut API base URL (env DOCUT_BASE_URL)")
	flags.String("api-key", "", "Docut API key (env DOCUT_API_KEY)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env DOCUT_LOG_LEVEL)")
	flags.String("publishers-file", "", "YAML/JSON publishers file (env DOCUT_PUBLISHERS_FILE)")
	flags.String("storage-type", "", "import dedupe store: bbolt or none (env DOCUT_STORAGE_TYPE)")
	flags.String("bbolt-path", "", "bbolt dedupe database path (env DOCUT_BBOLT_PATH)")

	root.AddCommand(
		newLinkCmd(c),
		newMetricsCmd(c),
		newImportCmd(c),
		newReportCmd(c),
	)
	return root
}
