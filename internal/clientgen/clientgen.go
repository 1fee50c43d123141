// Package clientgen generates per-language client scaffolding from a
// validated specification: a typed client with one publish method per
// send-operation, a generic subscribe, a transport abstraction with
// in-memory and NATS implementations, a package manifest, test scaffolding,
// a Dockerfile, and CI configuration.
//
// All casing goes through internal/casing; all static boilerplate is a pure
// function of the API title and version so it can be regenerated (and
// cached) without consulting the rest of the document.
package clientgen

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"time"

	"github.com/eventline-labs/eventc/internal/casing"
	"github.com/eventline-labs/eventc/internal/validate"
	"github.com/eventline-labs/eventc/pkg/spec"
)

//go:embed templates
var templateFS embed.FS

// Supported target languages.
const (
	TargetGo         = "go"
	TargetTypeScript = "typescript"
	TargetPython     = "python"
)

// DefaultTargets lists every supported target in output order.
var DefaultTargets = []string{TargetGo, TargetTypeScript, TargetPython}

// DefaultPublishTimeout bounds each generated publish call.
const DefaultPublishTimeout = 5 * time.Second

// Options configures client generation.
type Options struct {
	// Targets selects the languages to generate. Empty means DefaultTargets.
	Targets []string
	// PublishTimeout bounds each generated publish call.
	PublishTimeout time.Duration
	// SourceTag is the envelope source field. Empty derives it from the
	// API title.
	SourceTag string
}

type emitter func(templateData) (map[string]string, error)

var emitters = map[string]emitter{
	TargetGo:         emitGo,
	TargetTypeScript: emitTypeScript,
	TargetPython:     emitPython,
}

// Generate returns, per target language, a map of relative file path to
// source text. Paths are relative to the language's own subdirectory.
func Generate(v validate.Validated, opts Options) (map[string]map[string]string, error) {
	targets := opts.Targets
	if len(targets) == 0 {
		targets = DefaultTargets
	}

	data := buildTemplateData(v.Document(), opts)
	out := make(map[string]map[string]string, len(targets))
	for _, target := range targets {
		emit, ok := emitters[target]
		if !ok {
			return nil, fmt.Errorf("unknown target language %q", target)
		}
		files, err := emit(data)
		if err != nil {
			return nil, fmt.Errorf("generate %s client: %w", target, err)
		}
		out[target] = files
	}
	return out, nil
}

type operationData struct {
	ID           string
	MethodPascal string
	MethodCamel  string
	MethodSnake  string
	Subject      string
	EventType    string
}

type templateData struct {
	Title            string
	Version          string
	Description      string
	SourceTag        string
	Package          string
	PublishTimeoutMS int64
	Operations       []operationData
}

// buildTemplateData derives everything the templates need from the document.
// Method names come deterministically from operation ids; the publish subject
// is the operation's channel address; the envelope event type is the
// operation's first message name (the operation id when it carries none).
func buildTemplateData(doc *spec.Document, opts Options) templateData {
	timeout := opts.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	source := opts.SourceTag
	if source == "" {
		source = casing.Snake(doc.Info.Title)
	}

	data := templateData{
		Title:            doc.Info.Title,
		Version:          doc.Info.Version,
		Description:      doc.Info.Description,
		SourceTag:        source,
		Package:          casing.Snake(doc.Info.Title),
		PublishTimeoutMS: timeout.Milliseconds(),
	}
	for _, op := range doc.SendOperations() {
		eventType := op.ID
		if len(op.Messages) > 0 {
			eventType = op.Messages[0]
		}
		data.Operations = append(data.Operations, operationData{
			ID:           op.ID,
			MethodPascal: casing.Pascal(op.ID),
			MethodCamel:  casing.Camel(op.ID),
			MethodSnake:  casing.Snake(op.ID),
			Subject:      op.Channel,
			EventType:    eventType,
		})
	}
	return data
}

// emitFiles renders one template per output path.
func emitFiles(data templateData, files map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(files))
	for path, tplName := range files {
		content, err := render(tplName, data)
		if err != nil {
			return nil, err
		}
		out[path] = content
	}
	return out, nil
}

func render(name string, data any) (string, error) {
	tplText, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	tpl, err := template.New(name).Delims("<<", ">>").Parse(string(tplText))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec template %s: %w", name, err)
	}
	return buf.String(), nil
}
