package validate

import (
	"fmt"
	"strings"

	"github.com/eventline-labs/eventc/pkg/spec"
)

// knownContentTypes are accepted without further shape inspection. Anything
// else must at least look like a MIME type (contain a slash).
var knownContentTypes = map[string]struct{}{
	"application/json":         {},
	"application/xml":          {},
	"application/octet-stream": {},
	"application/avro":         {},
	"application/protobuf":     {},
	"text/plain":               {},
}

// checkMessages verifies message name uniqueness, payload and header schema
// resolution, and content types.
func checkMessages(doc *spec.Document) error {
	seen := make(map[string]struct{}, len(doc.Components.Messages))
	for i := range doc.Components.Messages {
		msg := &doc.Components.Messages[i]
		if _, dup := seen[msg.Name]; dup {
			return &ReferenceError{Entity: "message", Name: msg.Name, Detail: "duplicate message name"}
		}
		seen[msg.Name] = struct{}{}

		if err := checkMessageSchema(doc, msg.Name, "payload", msg.Payload, true); err != nil {
			return err
		}
		if err := checkMessageSchema(doc, msg.Name, "headers", msg.Headers, false); err != nil {
			return err
		}
		if err := checkContentType(msg); err != nil {
			return err
		}
	}
	return nil
}

// checkMessageSchema validates one SchemaRef slot of a message. A by-name ref
// must resolve to a component schema; an inline schema must declare a type.
// Only the payload slot is required.
func checkMessageSchema(doc *spec.Document, msgName, slot string, ref spec.SchemaRef, required bool) error {
	switch ref.Kind {
	case spec.RefMissing:
		if required {
			return &SchemaConstraintError{
				Schema: msgName,
				Detail: fmt.Sprintf("%s is required (reference or inline schema)", slot),
			}
		}
		return nil
	case spec.RefByName:
		if doc.Components.FindSchema(ref.Name) == nil {
			return &ReferenceError{
				Entity: "message",
				Name:   msgName,
				Detail: fmt.Sprintf("%s references undefined schema %q", slot, ref.Name),
			}
		}
		return nil
	case spec.RefInline:
		if ref.Inline == nil || ref.Inline.Type == "" {
			return &SchemaConstraintError{
				Schema: msgName,
				Detail: fmt.Sprintf("inline %s schema must declare a type", slot),
			}
		}
		return nil
	default:
		return &SchemaConstraintError{Schema: msgName, Detail: fmt.Sprintf("unknown %s reference kind", slot)}
	}
}

func checkContentType(msg *spec.MessageSpec) error {
	if msg.ContentType == "" {
		return nil
	}
	if _, ok := knownContentTypes[msg.ContentType]; ok {
		return nil
	}
	if strings.Contains(msg.ContentType, "/") {
		return nil
	}
	return &SchemaConstraintError{
		Schema: msg.Name,
		Detail: fmt.Sprintf("content type %q is not a known MIME type", msg.ContentType),
	}
}
