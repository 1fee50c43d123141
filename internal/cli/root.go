// Package cli provides the command-line interface for eventc.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eventline-labs/eventc/internal/cli/commands"
	"github.com/eventline-labs/eventc/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eventc",
		Short: "eventc - Event API Compiler",
		Long: `eventc compiles an event-API specification into a Cap'n Proto wire
schema and ready-to-build client scaffolding for Go, TypeScript, and Python.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./eventc.yaml)")
	rootCmd.PersistentFlags().StringP("out-dir", "d", config.DefaultOutDir, "Output directory for generated artifacts")
	rootCmd.PersistentFlags().StringSlice("targets", nil, "Client languages to generate (go, typescript, python)")
	rootCmd.PersistentFlags().Int("workers", config.DefaultWorkers, "Concurrent artifact writes")
	rootCmd.PersistentFlags().Duration("write-timeout", config.DefaultWriteTimeout, "Per-artifact write timeout")
	rootCmd.PersistentFlags().Duration("publish-timeout", 0, "Publish timeout baked into generated clients")
	rootCmd.PersistentFlags().String("source", "", "Envelope source tag in generated clients")
	rootCmd.PersistentFlags().Bool("random-ids", false, "Use process-random schema file ids instead of content-derived ones")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("targets", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"go", "typescript", "python"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
