package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eventline-labs/eventc/internal/cli/output"
	"github.com/eventline-labs/eventc/internal/config"
	"github.com/eventline-labs/eventc/internal/pipeline"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger, and renderer for a command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		cfg = &config.Config{
			OutDir:       config.DefaultOutDir,
			Workers:      config.DefaultWorkers,
			WriteTimeout: config.DefaultWriteTimeout,
			OutputFormat: config.DefaultOutput,
		}
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// NewPipeline builds a pipeline from the command's configuration.
func (c *CommandContext) NewPipeline() *pipeline.Pipeline {
	return pipeline.New(pipeline.Config{
		OutDir:         c.Cfg.OutDir,
		Targets:        c.Cfg.Targets,
		Workers:        c.Cfg.Workers,
		WriteTimeout:   c.Cfg.WriteTimeout,
		PublishTimeout: c.Cfg.PublishTimeout,
		SourceTag:      c.Cfg.SourceTag,
		RandomIDs:      c.Cfg.RandomIDs,
		Logger:         c.Logger,
	})
}
