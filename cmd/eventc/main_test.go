// Package main provides tests for the eventc CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eventline-labs/eventc/internal/cli"
)

const validSpec = `
info:
  title: Order Service
  version: 1.0.0
channels:
  - address: orders/created
operations:
  - operation_id: publish_order_created
    action: send
    channel: orders/created
    messages: [order_created_event]
components:
  messages:
    - name: order_created_event
      content_type: application/json
      payload: OrderEventSchema
  schemas:
    - name: OrderEventSchema
      type: object
      properties:
        - name: id
          type: string
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write spec: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "eventc") {
		t.Errorf("version output should contain 'eventc', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}
	for _, sub := range []string{"generate", "validate", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output should list %q, got: %s", sub, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	spec := writeSpec(t, validSpec)
	out, err := execute(t, "validate", spec, "--output", "json")
	if err != nil {
		t.Errorf("validate command error = %v, output: %s", err, out)
	}
	if !strings.Contains(out, `"valid": true`) {
		t.Errorf("validate output should report valid, got: %s", out)
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	spec := writeSpec(t, strings.ReplaceAll(validSpec, "payload: OrderEventSchema", "payload: MissingSchema"))
	_, err := execute(t, "validate", spec)
	if err == nil {
		t.Error("validate should fail on an unresolved schema reference")
	}
}

func TestGenerateCommand(t *testing.T) {
	spec := writeSpec(t, validSpec)
	outDir := t.TempDir()

	out, err := execute(t, "generate", spec, "--out-dir", outDir, "--output", "json")
	if err != nil {
		t.Fatalf("generate command error = %v, output: %s", err, out)
	}

	for _, path := range []string{
		filepath.Join("schema", "main.capnp"),
		filepath.Join("go", "client.go"),
		"Makefile",
	} {
		if _, err := os.Stat(filepath.Join(outDir, path)); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}
}

func TestGenerateCommand_Check(t *testing.T) {
	spec := writeSpec(t, validSpec)
	outDir := t.TempDir()

	out, err := execute(t, "generate", spec, "--check", "--out-dir", outDir, "--output", "json")
	if err != nil {
		t.Fatalf("generate --check error = %v, output: %s", err, out)
	}
	if !strings.Contains(out, "schema/main.capnp") {
		t.Errorf("check output should list planned artifacts, got: %s", out)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("check must not write artifacts, found %d entries", len(entries))
	}
}

func TestGenerateCommand_MissingSpec(t *testing.T) {
	_, err := execute(t, "generate", filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("generate should fail on a missing specification file")
	}
}
