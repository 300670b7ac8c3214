package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/internal/config"
	"github.com/aretw0/notebook/internal/logging"
	"github.com/aretw0/notebook/internal/platform"
	"github.com/aretw0/notebook/pkg/core"
)

var (
	verbose    bool
	dbPath     string
	configPath string
	readOnly   bool
	logFile    string
	noSandbox  bool

	cfg       config.Config
	logCloser io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "A persistent local notebook backed by SQLite",
	Long: `notebook keeps titled text notes in a single SQLite file.
Run it without arguments for an interactive shell, or use the subcommands
for one-shot operations.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(config.LoadOptions{
			ConfigPath: resolveConfigPath(),
			Flags:      flagOverrides(cmd),
		})
		if err != nil {
			return err
		}
		cfg = loaded

		logger, closer, err := logging.New(cfg.Logging, os.Stderr)
		if err != nil {
			return err
		}
		logCloser = closer
		slog.SetDefault(logger)
		return nil
	},
	RunE: runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs the root command and releases the log file afterwards.
// Cobra skips post-run hooks when RunE fails, so this cannot live there.
func execute(ctx context.Context) error {
	defer closeLogs()
	return rootCmd.ExecuteContext(ctx)
}

func closeLogs() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
	}
	logCloser = nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&dbPath, "db", "", "Path to the notebook database (default "+config.DefaultDBPath+")")
	pf.StringVar(&configPath, "config", "", "Path to the config file (default "+config.DefaultConfigFile+" in this or a parent directory)")
	pf.BoolVar(&readOnly, "read-only", false, "Open the database without write access")
	pf.StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
	pf.BoolVar(&noSandbox, "no-sandbox", false, "Use the real database path even under go run")
	_ = pf.MarkHidden("no-sandbox")
}

// flagOverrides passes on only the flags set on the command line so they
// do not mask file or environment values.
func flagOverrides(cmd *cobra.Command) config.FlagOverrides {
	var o config.FlagOverrides
	flags := cmd.Flags()
	if flags.Changed("db") {
		o.DBPath = &dbPath
	}
	if flags.Changed("read-only") {
		o.ReadOnly = &readOnly
	}
	if flags.Changed("log-file") {
		o.LogFile = &logFile
	}
	if verbose {
		level := "debug"
		o.LogLevel = &level
	}
	return o
}

// resolveConfigPath prefers --config, then NOTEBOOK_CONFIG (left to the
// loader), then the nearest notebook.yaml above the working directory.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if _, ok := os.LookupEnv(config.EnvConfigPath); ok {
		return ""
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root, err := platform.FindRoot(wd, config.DefaultConfigFile)
	if err != nil {
		return ""
	}
	return filepath.Join(root, config.DefaultConfigFile)
}

// openService opens the configured notebook.
func openService() (*core.Service, error) {
	opts := []notebook.Option{
		notebook.WithLogger(slog.Default()),
		notebook.WithReadOnly(cfg.Database.ReadOnly),
	}
	if noSandbox {
		opts = append(opts, notebook.WithDevSafety(false))
	}
	return notebook.New(cfg.Database.Path, opts...)
}

// withService opens the notebook, runs fn and closes it again.
func withService(fn func(svc *core.Service) error) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			slog.Warn("closing notebook", "error", err)
		}
	}()
	return fn(svc)
}
