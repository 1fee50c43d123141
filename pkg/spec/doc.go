// Package spec defines the shared language of the eventc compiler.
//
// This package contains:
//   - The typed specification document (Document, InfoSpec)
//   - Channel, operation, and component entities
//   - The SchemaRef union (reference-by-name, inline, or missing)
//
// The Golden Rule: pkg/spec imports ONLY the standard library.
// All other packages depend on spec, not the reverse. The document is
// constructed once by a front end (YAML loader, programmatic builder)
// and is immutable afterward; nothing in the compiler mutates it.
package spec
