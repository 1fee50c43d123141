package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventline-labs/eventc/internal/testutil"
	"github.com/eventline-labs/eventc/internal/validate"
	"github.com/eventline-labs/eventc/pkg/spec"
)

func orderDoc() *spec.Document {
	return &spec.Document{
		Info: spec.InfoSpec{Title: "Order Service", Version: "1.0.0"},
		Channels: []spec.ChannelSpec{
			{Address: "orders/created"},
		},
		Operations: []spec.OperationSpec{
			{ID: "publish_order_created", Action: spec.ActionSend, Channel: "orders/created", Messages: []string{"order_created_event"}},
		},
		Components: spec.ComponentsSpec{
			Messages: []spec.MessageSpec{
				{Name: "order_created_event", ContentType: "application/json", Payload: spec.ByName("OrderEventSchema")},
			},
			Schemas: []spec.SchemaSpec{
				{
					Name: "OrderEventSchema",
					Type: spec.TypeObject,
					Properties: []spec.PropertySpec{
						{Name: "id", Type: spec.TypeString},
						{Name: "total", Type: spec.TypeNumber},
					},
					Required: []string{"id"},
				},
			},
		},
	}
}

func TestRun_FullOutputTree(t *testing.T) {
	out := t.TempDir()
	p := New(Config{OutDir: out, Logger: testutil.NewTestLogger(t)})

	written, err := p.Run(context.Background(), orderDoc())
	require.NoError(t, err)
	require.NotEmpty(t, written)

	// The manifest is sorted and matches what is on disk.
	assert.IsNonDecreasing(t, written)
	for _, path := range written {
		info, statErr := os.Stat(filepath.Join(out, path))
		require.NoError(t, statErr, path)
		assert.False(t, info.IsDir(), path)
	}

	// One schema directory shared by every client.
	for _, name := range []string{"main.capnp", "imports.capnp", "types.capnp", "events.capnp"} {
		assert.Contains(t, written, "schema/"+name)
	}
	// One subtree per target language.
	assert.Contains(t, written, "go/client.go")
	assert.Contains(t, written, "typescript/src/client.ts")
	assert.Contains(t, written, "python/client.py")
	// Root boilerplate.
	assert.Contains(t, written, "Makefile")
	assert.Contains(t, written, "docker-compose.yml")
	assert.Contains(t, written, "README.md")
}

func TestRun_ValidationFailureAttributed(t *testing.T) {
	doc := orderDoc()
	doc.Operations[0].Channel = "orders/unknown"

	p := New(Config{OutDir: t.TempDir()})
	_, err := p.Run(context.Background(), doc)
	require.Error(t, err)

	var stageErr *Error
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageValidation, stageErr.Stage)

	var refErr *validate.ReferenceError
	assert.ErrorAs(t, err, &refErr)
}

func TestRun_SingleTarget(t *testing.T) {
	out := t.TempDir()
	p := New(Config{OutDir: out, Targets: []string{"go"}})

	written, err := p.Run(context.Background(), orderDoc())
	require.NoError(t, err)

	assert.Contains(t, written, "go/client.go")
	for _, path := range written {
		assert.NotContains(t, path, "typescript/")
		assert.NotContains(t, path, "python/")
	}
}

func TestRun_Deterministic(t *testing.T) {
	p1 := New(Config{OutDir: t.TempDir()})
	first, err := p1.Run(context.Background(), orderDoc())
	require.NoError(t, err)

	p2 := New(Config{OutDir: t.TempDir()})
	second, err := p2.Run(context.Background(), orderDoc())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPlan_DoesNotTouchDisk(t *testing.T) {
	out := t.TempDir()
	p := New(Config{OutDir: out})

	artifacts, err := p.Plan(orderDoc())
	require.NoError(t, err)
	require.NotEmpty(t, artifacts)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Config{OutDir: t.TempDir()})
	_, err := p.Run(ctx, orderDoc())
	require.Error(t, err)

	var stageErr *Error
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageMaterialization, stageErr.Stage)
}
