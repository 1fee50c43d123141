package spec

// RefKind discriminates the SchemaRef union.
type RefKind int

// SchemaRef kinds. The zero value is RefMissing, so an absent payload or
// headers field decodes to a missing ref without special casing.
const (
	RefMissing RefKind = iota
	RefByName
	RefInline
)

// SchemaRef is the payload/headers union: a reference to a component schema
// by name, an inline schema, or nothing. Consumers switch on Kind; the
// validator guarantees by-name refs resolve before any generator runs.
type SchemaRef struct {
	Kind   RefKind
	Name   string
	Inline *SchemaSpec
}

// ByName returns a reference to a component schema.
func ByName(name string) SchemaRef {
	return SchemaRef{Kind: RefByName, Name: name}
}

// InlineRef returns a reference wrapping an inline schema.
func InlineRef(s *SchemaSpec) SchemaRef {
	return SchemaRef{Kind: RefInline, Inline: s}
}

// IsMissing reports whether the ref is absent.
func (r SchemaRef) IsMissing() bool { return r.Kind == RefMissing }

// Resolve returns the schema the ref points at: the named component schema,
// the inline schema, or nil for a missing ref. Returns nil for a by-name ref
// that does not resolve; callers past validation may treat that as a defect.
func (r SchemaRef) Resolve(components *ComponentsSpec) *SchemaSpec {
	switch r.Kind {
	case RefByName:
		return components.FindSchema(r.Name)
	case RefInline:
		return r.Inline
	default:
		return nil
	}
}
