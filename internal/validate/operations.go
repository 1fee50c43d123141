package validate

import (
	"fmt"

	"github.com/eventline-labs/eventc/pkg/spec"
)

// checkOperations verifies operation id uniqueness, action membership,
// channel and message resolution, and reply shape.
func checkOperations(doc *spec.Document) error {
	seen := make(map[string]struct{}, len(doc.Operations))
	for i := range doc.Operations {
		op := &doc.Operations[i]
		if _, dup := seen[op.ID]; dup {
			return &ReferenceError{Entity: "operation", Name: op.ID, Detail: "duplicate operation id"}
		}
		seen[op.ID] = struct{}{}

		if op.Action != spec.ActionSend && op.Action != spec.ActionReceive {
			return &ReferenceError{
				Entity: "operation",
				Name:   op.ID,
				Detail: fmt.Sprintf("action must be send or receive, got %q", op.Action),
			}
		}

		if op.Channel == "" {
			return &ReferenceError{Entity: "operation", Name: op.ID, Detail: "channel reference is required"}
		}
		if doc.FindChannel(op.Channel) == nil {
			return &ReferenceError{
				Entity: "operation",
				Name:   op.ID,
				Detail: fmt.Sprintf("references undefined channel %q", op.Channel),
			}
		}

		for _, msg := range op.Messages {
			if doc.Components.FindMessage(msg) == nil {
				return &ReferenceError{
					Entity: "operation",
					Name:   op.ID,
					Detail: fmt.Sprintf("references undefined message %q", msg),
				}
			}
		}

		if op.Reply != nil {
			if err := checkReply(doc, op); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkReply validates an operation's reply: it must name a declared channel
// or carry a literal address, and its message references must resolve. A
// literal address is not resolved against declared channels.
func checkReply(doc *spec.Document, op *spec.OperationSpec) error {
	reply := op.Reply
	if reply.Channel == "" && reply.Address == "" {
		return &ReferenceError{Entity: "operation", Name: op.ID, Detail: "reply must specify a channel or an address"}
	}
	if reply.Channel != "" && doc.FindChannel(reply.Channel) == nil {
		return &ReferenceError{
			Entity: "operation",
			Name:   op.ID,
			Detail: fmt.Sprintf("reply references undefined channel %q", reply.Channel),
		}
	}
	for _, msg := range reply.Messages {
		if doc.Components.FindMessage(msg) == nil {
			return &ReferenceError{
				Entity: "operation",
				Name:   op.ID,
				Detail: fmt.Sprintf("reply references undefined message %q", msg),
			}
		}
	}
	return nil
}
