package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"github.com/plumber-cd/ez-pipeline/internal/store"
	"github.com/plumber-cd/ez-pipeline/internal/ui"
)

var version = "dev"

type rootFlags struct {
	dir     string
	logFile string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "ez-pipeline",
		Short: "Run options form for the sequencing pipeline",
		Long: `EZ-Pipeline shows the pipeline run options as a terminal form.

Defaults come from .ez-pipeline/profile.yaml in --dir, or the built-in
factory profile when that file does not exist.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.dir, "dir", ".", "Directory holding .ez-pipeline/profile.yaml")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Log at debug level")

	cmd.AddCommand(newDefaultsCmd(flags))
	cmd.AddCommand(newInitCmd(flags))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// newLogger builds the file logger. Without --log-file nothing is logged,
// since the terminal belongs to the form.
func newLogger(flags *rootFlags) (*zap.Logger, error) {
	if flags.logFile == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{flags.logFile}
	config.ErrorOutputPaths = []string{flags.logFile}
	if flags.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// loadProfile returns the profile in dir and the path it came from, which
// is empty for the factory profile.
func loadProfile(dir string) (domain.Profile, string, error) {
	profile, err := store.Load(dir)
	if err != nil {
		return domain.Profile{}, "", fmt.Errorf("load profile: %w", err)
	}
	exists, err := store.Exists(dir)
	if err != nil {
		return domain.Profile{}, "", err
	}
	if !exists {
		return profile, "", nil
	}
	return profile, store.ProfilePath(dir), nil
}

func runUI(flags *rootFlags) error {
	logger, err := newLogger(flags)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	profile, path, err := loadProfile(flags.dir)
	if err != nil {
		return err
	}
	logger.Info("starting", zap.String("profile", path), zap.String("version", version))

	app, err := ui.New(profile, path, logger)
	if err != nil {
		return err
	}
	return app.Run()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ez-pipeline %s\n", version)
		},
	}
}
