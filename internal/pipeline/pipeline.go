// Package pipeline orchestrates a full compilation run: validate the
// document, generate the wire schema and client scaffolding, then
// materialize everything under the output directory.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventline-labs/eventc/internal/clientgen"
	"github.com/eventline-labs/eventc/internal/idl"
	"github.com/eventline-labs/eventc/internal/materialize"
	"github.com/eventline-labs/eventc/internal/validate"
	"github.com/eventline-labs/eventc/pkg/spec"
)

// Stage names a pipeline phase for error attribution.
type Stage string

const (
	StageValidation      Stage = "validation"
	StageGeneration      Stage = "generation"
	StageMaterialization Stage = "materialization"
)

// Error wraps a failure with the stage it occurred in.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// SchemaDir is the subdirectory holding the generated wire schema.
const SchemaDir = "schema"

// Config holds pipeline configuration.
type Config struct {
	// OutDir is the root of the generated output tree.
	OutDir string
	// Targets selects the client languages. Empty means all supported.
	Targets []string
	// Workers bounds concurrent artifact writes (0 means the default).
	Workers int
	// WriteTimeout bounds each individual artifact write (0 means none).
	WriteTimeout time.Duration
	// PublishTimeout is baked into generated publish calls (0 means the
	// default).
	PublishTimeout time.Duration
	// SourceTag is the envelope source field in generated clients.
	SourceTag string
	// RandomIDs switches schema file ids from content-derived to
	// process-random.
	RandomIDs bool
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Pipeline runs the validate, generate, materialize sequence.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Plan validates the document and returns every artifact a run would write,
// without touching the filesystem. Paths are relative to the output
// directory.
func (p *Pipeline) Plan(doc *spec.Document) ([]materialize.Artifact, error) {
	v, err := validate.Validate(doc)
	if err != nil {
		return nil, &Error{Stage: StageValidation, Err: err}
	}
	artifacts, err := p.assemble(v)
	if err != nil {
		return nil, &Error{Stage: StageGeneration, Err: err}
	}
	return artifacts, nil
}

// Run executes the full pipeline and returns the written paths, relative to
// the output directory and sorted.
func (p *Pipeline) Run(ctx context.Context, doc *spec.Document) ([]string, error) {
	start := time.Now()

	artifacts, err := p.Plan(doc)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("generation complete",
		"artifacts", len(artifacts),
		"targets", p.targets())

	written, err := materialize.Write(ctx, p.cfg.OutDir, artifacts, materialize.Options{
		Workers:      p.cfg.Workers,
		WriteTimeout: p.cfg.WriteTimeout,
		Logger:       p.logger,
	})
	if err != nil {
		return nil, &Error{Stage: StageMaterialization, Err: err}
	}
	p.logger.Info("pipeline complete",
		"written", len(written),
		"out_dir", p.cfg.OutDir,
		"duration", time.Since(start))
	return written, nil
}

func (p *Pipeline) targets() []string {
	if len(p.cfg.Targets) > 0 {
		return p.cfg.Targets
	}
	return clientgen.DefaultTargets
}

// assemble collects schema files, per-language client files, and root
// boilerplate into one flat artifact list. Each generator owns a disjoint
// subtree, so a path collision is a generator defect and panics rather than
// silently overwriting.
func (p *Pipeline) assemble(v validate.Validated) ([]materialize.Artifact, error) {
	docs, err := idl.Generate(v, idl.Options{RandomIDs: p.cfg.RandomIDs})
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	clients, err := clientgen.Generate(v, clientgen.Options{
		Targets:        p.cfg.Targets,
		PublishTimeout: p.cfg.PublishTimeout,
		SourceTag:      p.cfg.SourceTag,
	})
	if err != nil {
		return nil, fmt.Errorf("generate clients: %w", err)
	}
	root, err := clientgen.RootArtifacts(v.Document().Info)
	if err != nil {
		return nil, fmt.Errorf("generate root artifacts: %w", err)
	}

	seen := make(map[string]struct{})
	add := func(artifacts []materialize.Artifact, path, content string) []materialize.Artifact {
		if _, dup := seen[path]; dup {
			panic(fmt.Sprintf("duplicate artifact path %q", path))
		}
		seen[path] = struct{}{}
		return append(artifacts, materialize.Artifact{Path: path, Content: []byte(content)})
	}

	var artifacts []materialize.Artifact
	for name, content := range docs.Files() {
		artifacts = add(artifacts, SchemaDir+"/"+name, content)
	}
	for _, target := range p.targets() {
		for path, content := range clients[target] {
			artifacts = add(artifacts, target+"/"+path, content)
		}
	}
	for path, content := range root {
		artifacts = add(artifacts, path, content)
	}
	return artifacts, nil
}
