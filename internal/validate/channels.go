package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eventline-labs/eventc/pkg/spec"
)

// placeholderPattern matches {param} placeholders in channel addresses.
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// checkChannels verifies address uniqueness, placeholder/parameter agreement,
// and that operations listed on a channel resolve, along with their message
// references against component messages.
func checkChannels(doc *spec.Document) error {
	seen := make(map[string]struct{}, len(doc.Channels))
	for i := range doc.Channels {
		ch := &doc.Channels[i]
		if _, dup := seen[ch.Address]; dup {
			return &ReferenceError{Entity: "channel", Name: ch.Address, Detail: "duplicate channel address"}
		}
		seen[ch.Address] = struct{}{}

		if err := checkChannelParameters(ch); err != nil {
			return err
		}
		if err := checkChannelOperations(doc, ch); err != nil {
			return err
		}
	}
	return nil
}

// checkChannelParameters ensures every {param} placeholder in the address has
// a declared parameter. A placeholder is satisfied by a parameter whose name
// matches verbatim or in snake_case form ({userId} matches user_id).
func checkChannelParameters(ch *spec.ChannelSpec) error {
	declared := make(map[string]struct{}, len(ch.Parameters))
	for _, p := range ch.Parameters {
		declared[p.Name] = struct{}{}
	}

	var undefined []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(ch.Address, -1) {
		name := m[1]
		if _, ok := declared[name]; ok {
			continue
		}
		if _, ok := declared[toSnake(name)]; ok {
			continue
		}
		undefined = append(undefined, name)
	}
	if len(undefined) > 0 {
		return &ReferenceError{
			Entity: "channel",
			Name:   ch.Address,
			Detail: fmt.Sprintf("references undefined parameters [%s]", strings.Join(undefined, ", ")),
		}
	}
	return nil
}

// checkChannelOperations resolves a channel's operation list and the message
// references of each listed operation against component messages.
func checkChannelOperations(doc *spec.Document, ch *spec.ChannelSpec) error {
	for _, opID := range ch.Operations {
		op := doc.FindOperation(opID)
		if op == nil {
			return &ReferenceError{
				Entity: "channel",
				Name:   ch.Address,
				Detail: fmt.Sprintf("references undefined operation %q", opID),
			}
		}
		for _, msg := range op.Messages {
			if doc.Components.FindMessage(msg) == nil {
				return &ReferenceError{
					Entity: "channel",
					Name:   ch.Address,
					Detail: fmt.Sprintf("operation %q references undefined message %q", opID, msg),
				}
			}
		}
	}
	return nil
}

// toSnake converts a camelCase identifier to snake_case.
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
