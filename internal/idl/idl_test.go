package idl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventline-labs/eventc/internal/validate"
	"github.com/eventline-labs/eventc/pkg/spec"
)

func validated(t *testing.T, doc *spec.Document) validate.Validated {
	t.Helper()
	v, err := validate.Validate(doc)
	require.NoError(t, err)
	return v
}

func invoiceDoc() *spec.Document {
	return &spec.Document{
		Info: spec.InfoSpec{Title: "Billing", Version: "2.1.0"},
		Channels: []spec.ChannelSpec{
			{Address: "invoices/issued"},
		},
		Operations: []spec.OperationSpec{
			{ID: "publish_invoice_issued", Action: spec.ActionSend, Channel: "invoices/issued", Messages: []string{"invoice_issued_event"}},
		},
		Components: spec.ComponentsSpec{
			Messages: []spec.MessageSpec{
				{Name: "invoice_issued_event", ContentType: "application/json", Payload: spec.ByName("InvoiceSchema")},
			},
			Schemas: []spec.SchemaSpec{
				{
					Name: "InvoiceSchema",
					Type: spec.TypeObject,
					Properties: []spec.PropertySpec{
						{Name: "id", Type: spec.TypeString},
						{Name: "total", Type: spec.TypeNumber},
						{Name: "note", Type: spec.TypeString},
					},
					Required: []string{"id"},
				},
			},
		},
	}
}

func TestGenerate_OrdinalsFollowDeclarationOrder(t *testing.T) {
	docs, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	assert.Contains(t, docs.Types, "struct InvoiceSchema {")
	assert.Contains(t, docs.Types, "id @0 :Text;")
	assert.Contains(t, docs.Types, "total @1 :Float64;")
	assert.Contains(t, docs.Types, "note @2 :Text;")

	// Declaration order, not alphabetical: id before note before total in the
	// rendered document would be wrong; check positional order directly.
	idIdx := strings.Index(docs.Types, "id @0")
	totalIdx := strings.Index(docs.Types, "total @1")
	noteIdx := strings.Index(docs.Types, "note @2")
	assert.Less(t, idIdx, totalIdx)
	assert.Less(t, totalIdx, noteIdx)
}

func TestGenerate_ByteIdenticalAcrossRuns(t *testing.T) {
	first, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	for range 3 {
		again, err := Generate(validated(t, invoiceDoc()), Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerate_RandomIDsDiffer(t *testing.T) {
	first, err := Generate(validated(t, invoiceDoc()), Options{RandomIDs: true})
	require.NoError(t, err)
	second, err := Generate(validated(t, invoiceDoc()), Options{RandomIDs: true})
	require.NoError(t, err)

	assert.NotEqual(t, first.Types, second.Types)
}

func TestGenerate_FileIDsDistinctPerDocument(t *testing.T) {
	docs, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	ids := make(map[string]struct{})
	for name, content := range docs.Files() {
		line, _, ok := strings.Cut(content, "\n")
		require.True(t, ok, name)
		require.True(t, strings.HasPrefix(line, "@0x"), "file id header in %s", name)
		ids[line] = struct{}{}
	}
	assert.Len(t, ids, 4, "each document gets its own file id")
}

func TestGenerate_EventsUnion(t *testing.T) {
	docs, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	assert.Contains(t, docs.Events, "struct InvoiceIssuedEvent {")
	assert.Contains(t, docs.Events, "payload @0 :Data;")
	assert.Contains(t, docs.Events, "union {")
	assert.Contains(t, docs.Events, "none @0 :Void;")
	assert.Contains(t, docs.Events, "invoiceIssuedEvent @1 :InvoiceIssuedEvent;")
}

func TestGenerate_EnvelopeAndBatch(t *testing.T) {
	docs, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	assert.Contains(t, docs.Main, "struct Envelope {")
	assert.Contains(t, docs.Main, "schemaHash @6 :Text;")
	assert.Contains(t, docs.Main, "compression @7 :Compression;")
	assert.Contains(t, docs.Main, "struct Batch {")
	assert.Contains(t, docs.Imports, "struct Timestamp {")
	assert.Contains(t, docs.Imports, "struct KeyValue {")
}

func TestGenerate_TypeMapping(t *testing.T) {
	doc := invoiceDoc()
	doc.Components.Schemas = append(doc.Components.Schemas,
		spec.SchemaSpec{
			Name: "Mixed",
			Type: spec.TypeObject,
			Properties: []spec.PropertySpec{
				{Name: "count", Type: spec.TypeInteger},
				{Name: "active", Type: spec.TypeBoolean},
				{Name: "created_at", Type: spec.TypeString, Format: "timestamp"},
				{Name: "trace_id", Type: spec.TypeString, Format: "uuid"},
				{Name: "blob", Type: spec.TypeObject},
			},
		},
		spec.SchemaSpec{
			Name:  "TagList",
			Type:  spec.TypeArray,
			Items: &spec.SchemaSpec{Type: spec.TypeString},
		},
	)

	docs, err := Generate(validated(t, doc), Options{})
	require.NoError(t, err)

	assert.Contains(t, docs.Types, "count @0 :Int64;")
	assert.Contains(t, docs.Types, "active @1 :Bool;")
	assert.Contains(t, docs.Types, "createdAt @2 :Common.Timestamp;")
	assert.Contains(t, docs.Types, "traceId @3 :Data;")
	assert.Contains(t, docs.Types, "blob @4 :Data;")
	assert.Contains(t, docs.Types, "value @0 :List(Text);")
}

func TestGenerate_IDChangesWithContent(t *testing.T) {
	first, err := Generate(validated(t, invoiceDoc()), Options{})
	require.NoError(t, err)

	changed := invoiceDoc()
	changed.Components.Schemas[0].Properties[1].Name = "amount"
	second, err := Generate(validated(t, changed), Options{})
	require.NoError(t, err)

	firstID, _, _ := strings.Cut(first.Types, "\n")
	secondID, _, _ := strings.Cut(second.Types, "\n")
	assert.NotEqual(t, firstID, secondID)
}
