// Package cli implements the jsql command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"jeongsql/internal/client"
	"jeongsql/internal/config"

	"github.com/spf13/cobra"
)

type options struct {
	envFile  string
	backend  string
	seedMode string
	logLevel string
}

// NewRootCommand builds the jsql command tree. Running jsql with no
// subcommand starts the interactive shell.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "jsql",
		Short:         "Send SELECT and INSERT statements to a SQL backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Path to a .env file")
	flags.StringVar(&opts.backend, "backend", "", "Backend base URL (default "+config.DefaultBackendURL+")")
	flags.StringVar(&opts.seedMode, "seed-mode", "", "Seed rows from the client or the server: client|server")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	cmd.AddCommand(newQueryCommand(opts), newSeedCommand(opts), newShellCommand(opts))
	return cmd
}

// clientConfig merges flags over the loaded configuration.
func clientConfig(cmd *cobra.Command, opts *options) (client.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return client.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.BackendURL = opts.backend
	}
	if flags.Changed("seed-mode") {
		cfg.SeedMode = opts.seedMode
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	mode, err := client.ParseSeedMode(cfg.SeedMode)
	if err != nil {
		return client.Config{}, err
	}
	logger, err := config.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return client.Config{}, err
	}

	return client.Config{
		BaseURL:  cfg.BackendURL,
		SeedMode: mode,
		Logger:   logger.With(slog.String("component", "client")),
	}, nil
}

func newQueryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>...",
		Short: "Submit one statement and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clientConfig(cmd, opts)
			if err != nil {
				return err
			}
			c := client.New(cfg, client.NewWriterRenderer(cmd.OutOrStdout()))
			c.Submit(cmd.Context(), strings.Join(args, " "))
			return nil
		},
	}
}

func newSeedCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the fixed dummy rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := clientConfig(cmd, opts)
			if err != nil {
				return err
			}
			c := client.New(cfg, client.NewWriterRenderer(cmd.OutOrStdout()))
			c.Seed(cmd.Context())
			return nil
		},
	}
}

func newShellCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
