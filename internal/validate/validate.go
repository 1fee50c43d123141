// Package validate enforces the cross-entity invariants of a specification
// document: name uniqueness within each namespace, reference resolution, and
// per-entity shape rules.
//
// Validation is a pure predicate over the document. It runs five check groups
// in a fixed order (channels, messages, security schemes, schemas,
// operations) and halts at the first violation, returning one specific typed
// error. It never mutates the document and has no side effects.
package validate

import "github.com/eventline-labs/eventc/pkg/spec"

// Validated wraps a document that passed Validate. Generators accept only
// Validated input, so an unvalidated document cannot reach code generation.
type Validated struct {
	doc *spec.Document
}

// Document returns the underlying (immutable) document.
func (v Validated) Document() *spec.Document { return v.doc }

// Validate runs all check groups against the document. On success it returns
// the document wrapped as Validated; on failure it returns the first
// violation as a *ReferenceError, *SchemaConstraintError, or
// *ConfigurationError.
func Validate(doc *spec.Document) (Validated, error) {
	checks := []func(*spec.Document) error{
		checkChannels,
		checkMessages,
		checkSecuritySchemes,
		checkSchemas,
		checkOperations,
	}
	for _, check := range checks {
		if err := check(doc); err != nil {
			return Validated{}, err
		}
	}
	return Validated{doc: doc}, nil
}
