// Package config provides configuration management for the eventc CLI.
//
// Settings come from four layers, lowest to highest precedence: built-in
// defaults, an eventc.yaml config file, EVENTC_-prefixed environment
// variables, and command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// OutDir is the root of the generated output tree.
	OutDir string `koanf:"out_dir"`
	// Targets selects the client languages to generate.
	Targets []string `koanf:"targets"`
	// Workers bounds concurrent artifact writes.
	Workers int `koanf:"workers"`
	// WriteTimeout bounds each individual artifact write.
	WriteTimeout time.Duration `koanf:"write_timeout"`
	// PublishTimeout is baked into generated publish calls.
	PublishTimeout time.Duration `koanf:"publish_timeout"`
	// SourceTag is the envelope source field in generated clients. Empty
	// derives it from the API title.
	SourceTag string `koanf:"source"`
	// RandomIDs switches schema file ids from content-derived to
	// process-random.
	RandomIDs bool `koanf:"random_ids"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// OutputFormat selects the renderer mode (auto, text, json).
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultOutDir       = "generated"
	DefaultWorkers      = 8
	DefaultWriteTimeout = 30 * time.Second
	DefaultOutput       = "auto" // auto-detect: TTY=text, non-TTY=json
)
