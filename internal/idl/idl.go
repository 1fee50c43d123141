// Package idl generates the Cap'n Proto wire schema shared by all generated
// clients: a generic envelope and batch wrapper, common imports, one struct
// per payload schema, and one struct per message plus a tagged event union.
//
// Generation is a pure function of a validated document. File ids are
// derived from a content hash of the document by default, so repeated runs
// over an unchanged specification are byte-identical; process-random ids are
// available behind an explicit opt-in.
package idl

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/eventline-labs/eventc/internal/casing"
	"github.com/eventline-labs/eventc/internal/validate"
	"github.com/eventline-labs/eventc/pkg/spec"
)

//go:embed templates
var templateFS embed.FS

// Schema file names within the output tree's schema/ directory.
const (
	FileMain    = "main.capnp"
	FileImports = "imports.capnp"
	FileTypes   = "types.capnp"
	FileEvents  = "events.capnp"
)

// Options configures IDL generation.
type Options struct {
	// RandomIDs switches file ids from content-derived to process-random.
	// Random ids avoid collisions across unrelated specifications at the
	// cost of reproducible output.
	RandomIDs bool
}

// Documents holds the four generated schema documents.
type Documents struct {
	Main    string
	Imports string
	Types   string
	Events  string
}

// Files returns the documents keyed by file name.
func (d Documents) Files() map[string]string {
	return map[string]string{
		FileMain:    d.Main,
		FileImports: d.Imports,
		FileTypes:   d.Types,
		FileEvents:  d.Events,
	}
}

type headerData struct {
	ID      string
	Title   string
	Version string
}

type fieldData struct {
	Name    string
	Ordinal int
	Type    string
}

type structData struct {
	Name   string
	Fields []fieldData
}

type typesData struct {
	headerData
	Structs []structData
}

type eventsData struct {
	headerData
	Messages []structData
	Union    []fieldData
}

// Generate renders the four schema documents from a validated document.
func Generate(v validate.Validated, opts Options) (Documents, error) {
	doc := v.Document()

	fp, err := fingerprint(doc)
	if err != nil {
		return Documents{}, err
	}
	id := func(name string) string {
		if opts.RandomIDs {
			return fmt.Sprintf("%#x", randomFileID())
		}
		return fmt.Sprintf("%#x", fileID(fp, name))
	}
	header := func(name string) headerData {
		return headerData{ID: id(name), Title: doc.Info.Title, Version: doc.Info.Version}
	}

	var out Documents
	out.Main, err = render("main.capnp.tpl", header(FileMain))
	if err != nil {
		return Documents{}, err
	}
	out.Imports, err = render("imports.capnp.tpl", header(FileImports))
	if err != nil {
		return Documents{}, err
	}
	out.Types, err = render("types.capnp.tpl", typesData{
		headerData: header(FileTypes),
		Structs:    buildTypeStructs(doc),
	})
	if err != nil {
		return Documents{}, err
	}
	out.Events, err = render("events.capnp.tpl", buildEventsData(doc, header(FileEvents)))
	if err != nil {
		return Documents{}, err
	}
	return out, nil
}

// buildTypeStructs maps every component schema to one struct. Object schemas
// get one field per property with ordinals assigned by declaration order;
// non-object schemas wrap their value in a single field.
func buildTypeStructs(doc *spec.Document) []structData {
	structs := make([]structData, 0, len(doc.Components.Schemas))
	for i := range doc.Components.Schemas {
		s := &doc.Components.Schemas[i]
		sd := structData{Name: casing.Pascal(s.Name)}
		if s.Type == spec.TypeObject {
			for ord := range s.Properties {
				p := &s.Properties[ord]
				sd.Fields = append(sd.Fields, fieldData{
					Name:    casing.Camel(p.Name),
					Ordinal: ord,
					Type:    capnpPropertyType(p),
				})
			}
		} else {
			sd.Fields = append(sd.Fields, fieldData{
				Name:    "value",
				Ordinal: 0,
				Type:    capnpSchemaType(s),
			})
		}
		structs = append(structs, sd)
	}
	return structs
}

// buildEventsData maps every message to a struct and builds the event union.
// The union always carries a leading void member so a single-message
// specification still yields a legal union.
func buildEventsData(doc *spec.Document, header headerData) eventsData {
	data := eventsData{headerData: header}
	for i := range doc.Components.Messages {
		msg := &doc.Components.Messages[i]
		name := casing.Pascal(msg.Name)
		data.Messages = append(data.Messages, structData{Name: name})
		data.Union = append(data.Union, fieldData{
			Name:    casing.Camel(msg.Name),
			Ordinal: i + 1,
			Type:    name,
		})
	}
	return data
}

func render(name string, data any) (string, error) {
	tplText, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	tpl, err := template.New(name).Parse(string(tplText))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec template %s: %w", name, err)
	}
	return buf.String(), nil
}
