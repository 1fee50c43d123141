package validate

import (
	"fmt"

	"github.com/eventline-labs/eventc/pkg/spec"
)

var schemaTypes = map[string]struct{}{
	spec.TypeString:  {},
	spec.TypeNumber:  {},
	spec.TypeInteger: {},
	spec.TypeBoolean: {},
	spec.TypeArray:   {},
	spec.TypeObject:  {},
	spec.TypeNull:    {},
}

// checkSchemas verifies schema name uniqueness and the shape rules for every
// component schema, then for every inline message schema. Array item schemas
// are validated recursively.
func checkSchemas(doc *spec.Document) error {
	seen := make(map[string]struct{}, len(doc.Components.Schemas))
	for i := range doc.Components.Schemas {
		s := &doc.Components.Schemas[i]
		if _, dup := seen[s.Name]; dup {
			return &ReferenceError{Entity: "schema", Name: s.Name, Detail: "duplicate schema name"}
		}
		seen[s.Name] = struct{}{}

		if err := checkSchemaShape(s.Name, s); err != nil {
			return err
		}
	}

	for i := range doc.Components.Messages {
		msg := &doc.Components.Messages[i]
		for _, ref := range []spec.SchemaRef{msg.Payload, msg.Headers} {
			if ref.Kind == spec.RefInline && ref.Inline != nil {
				if err := checkSchemaShape(msg.Name, ref.Inline); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// checkSchemaShape enforces the structural rules for one schema:
//   - type membership; format is valid on string types only
//   - object schemas need at least one property and forbid items
//   - array schemas need items; non-array schemas forbid items
//   - required must be a subset of declared property names
//   - min <= max and min_length <= max_length where both present
func checkSchemaShape(name string, s *spec.SchemaSpec) error {
	if _, ok := schemaTypes[s.Type]; !ok {
		return &SchemaConstraintError{Schema: name, Detail: fmt.Sprintf("unknown type %q", s.Type)}
	}
	if s.Format != "" && s.Type != spec.TypeString {
		return &SchemaConstraintError{Schema: name, Detail: fmt.Sprintf("format %q is only valid on string schemas", s.Format)}
	}

	switch s.Type {
	case spec.TypeObject:
		if len(s.Properties) == 0 {
			return &SchemaConstraintError{Schema: name, Detail: "object schema requires at least one property"}
		}
		if s.Items != nil {
			return &SchemaConstraintError{Schema: name, Detail: "object schema must not declare items"}
		}
	case spec.TypeArray:
		if s.Items == nil {
			return &SchemaConstraintError{Schema: name, Detail: "array schema requires items"}
		}
		if len(s.Properties) > 0 {
			return &SchemaConstraintError{Schema: name, Detail: "array schema must not declare properties"}
		}
	default:
		if len(s.Properties) > 0 {
			return &SchemaConstraintError{Schema: name, Detail: fmt.Sprintf("%s schema must not declare properties", s.Type)}
		}
		if s.Items != nil {
			return &SchemaConstraintError{Schema: name, Detail: fmt.Sprintf("%s schema must not declare items", s.Type)}
		}
	}

	if err := checkBounds(name, "", s.Minimum, s.Maximum, s.MinLength, s.MaxLength); err != nil {
		return err
	}

	declared := make(map[string]struct{}, len(s.Properties))
	for i := range s.Properties {
		p := &s.Properties[i]
		declared[p.Name] = struct{}{}
		if err := checkProperty(name, p); err != nil {
			return err
		}
	}
	for _, req := range s.Required {
		if _, ok := declared[req]; !ok {
			return &SchemaConstraintError{
				Schema: name,
				Detail: fmt.Sprintf("required names undeclared property %q", req),
			}
		}
	}

	if s.Items != nil {
		return checkSchemaShape(name, s.Items)
	}
	return nil
}

func checkProperty(schema string, p *spec.PropertySpec) error {
	if _, ok := schemaTypes[p.Type]; !ok {
		return &SchemaConstraintError{Schema: schema, Property: p.Name, Detail: fmt.Sprintf("unknown type %q", p.Type)}
	}
	if p.Format != "" && p.Type != spec.TypeString {
		return &SchemaConstraintError{Schema: schema, Property: p.Name, Detail: fmt.Sprintf("format %q is only valid on string properties", p.Format)}
	}
	return checkBounds(schema, p.Name, p.Minimum, p.Maximum, p.MinLength, p.MaxLength)
}

func checkBounds(schema, property string, minVal, maxVal *float64, minLen, maxLen *int) error {
	if minVal != nil && maxVal != nil && *minVal > *maxVal {
		return &SchemaConstraintError{
			Schema:   schema,
			Property: property,
			Detail:   fmt.Sprintf("min %v exceeds max %v", *minVal, *maxVal),
		}
	}
	if minLen != nil && maxLen != nil && *minLen > *maxLen {
		return &SchemaConstraintError{
			Schema:   schema,
			Property: property,
			Detail:   fmt.Sprintf("min_length %d exceeds max_length %d", *minLen, *maxLen),
		}
	}
	return nil
}
