package validate

import "fmt"

// ReferenceError reports a duplicate name or an unresolved cross-entity
// reference (channel, message, schema, parameter, or operation).
type ReferenceError struct {
	Entity string // entity kind, e.g. "channel", "operation"
	Name   string // offending entity's identifying name
	Detail string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Entity, e.Name, e.Detail)
}

// SchemaConstraintError reports an invalid type or format, a missing required
// shape (object without properties, array without items), a bound
// inconsistency, or a required list naming an undeclared property.
type SchemaConstraintError struct {
	Schema   string
	Property string // empty for schema-level violations
	Detail   string
}

func (e *SchemaConstraintError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("schema %q property %q: %s", e.Schema, e.Property, e.Detail)
	}
	return fmt.Sprintf("schema %q: %s", e.Schema, e.Detail)
}

// ConfigurationError reports a security scheme missing its type-specific
// required fields, or an OAuth2 flow missing a required URL.
type ConfigurationError struct {
	Scheme string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("security scheme %q: %s", e.Scheme, e.Detail)
}
