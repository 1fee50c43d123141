package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eventline-labs/eventc/internal/cli/output"
	"github.com/eventline-labs/eventc/internal/loader"
	"github.com/eventline-labs/eventc/internal/materialize"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Check bool
	Watch bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <spec-file>",
		Short: "Generate schema and client code from a specification",
		Long: `Validate the specification, then generate the Cap'n Proto wire schema,
per-language client scaffolding, and project boilerplate under the output
directory.`,
		Example: `  # Generate everything from api.yaml
  eventc generate api.yaml

  # Generate only the Go client into a custom directory
  eventc generate api.yaml --targets go --out-dir build/gen

  # List what would be written without touching the filesystem
  eventc generate api.yaml --check

  # Regenerate on every change to the specification
  eventc generate api.yaml --watch`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"gen"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "Plan artifacts without writing them")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the specification and regenerate on change")

	return cmd
}

func runGenerate(cmd *cobra.Command, specPath string, opts *GenerateOptions) error {
	cc := NewCommandContext(cmd)

	if opts.Watch {
		return runWatch(cmd.Context(), cc, specPath)
	}

	doc, err := loader.LoadFile(specPath)
	if err != nil {
		return err
	}

	if opts.Check {
		artifacts, err := cc.NewPipeline().Plan(doc)
		if err != nil {
			return err
		}
		return renderPlan(cc.Renderer, artifacts)
	}

	start := time.Now()
	written, err := cc.NewPipeline().Run(cmd.Context(), doc)
	if err != nil {
		return err
	}
	return renderRun(cc.Renderer, cc.Cfg.OutDir, written, time.Since(start))
}

func renderPlan(r *output.Renderer, artifacts []materialize.Artifact) error {
	if r.EffectiveMode() == output.ModeJSON {
		paths := make([]string, 0, len(artifacts))
		for _, a := range artifacts {
			paths = append(paths, a.Path)
		}
		return r.JSON(map[string]any{"artifacts": paths})
	}
	r.Header(1, fmt.Sprintf("Planned artifacts (%d)", len(artifacts)))
	for _, a := range artifacts {
		r.StatusLine(a.Path, "", fmt.Sprintf("%d bytes", len(a.Content)))
	}
	return nil
}

func renderRun(r *output.Renderer, outDir string, written []string, elapsed time.Duration) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{
			"out_dir":     outDir,
			"written":     written,
			"duration_ms": elapsed.Milliseconds(),
		})
	}
	r.ArtifactTable(written)
	r.Success(fmt.Sprintf("Wrote %d artifacts to %s in %s", len(written), outDir, elapsed.Round(time.Millisecond)))
	return nil
}

// watchDebounce coalesces editor write bursts into one regeneration.
const watchDebounce = 100 * time.Millisecond

// runWatch regenerates on every change to the specification file until the
// context is cancelled. A failing regeneration is reported and watching
// continues; the next valid save recovers.
func runWatch(ctx context.Context, cc *CommandContext, specPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(specPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", specPath, err)
	}

	regenerate := func() {
		doc, err := loader.LoadFile(specPath)
		if err == nil {
			start := time.Now()
			var written []string
			written, err = cc.NewPipeline().Run(ctx, doc)
			if err == nil {
				cc.Renderer.Success(fmt.Sprintf("Regenerated %d artifacts in %s", len(written), time.Since(start).Round(time.Millisecond)))
			}
		}
		if err != nil {
			cc.Renderer.Error(err.Error())
		}
	}

	cc.Renderer.Info(fmt.Sprintf("Watching %s (Ctrl+C to stop)", specPath))
	regenerate()

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, regenerate)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Renderer.Error(fmt.Sprintf("watch error: %v", err))
		}
	}
}
