package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventline-labs/eventc/internal/cli/output"
	"github.com/eventline-labs/eventc/internal/loader"
	"github.com/eventline-labs/eventc/internal/validate"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <spec-file>",
		Short: "Validate a specification without generating anything",
		Long: `Check the specification for unresolved references, malformed schemas,
incomplete security schemes, and invalid operations. Exits non-zero on the
first violation found.`,
		Example: `  eventc validate api.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)

			doc, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := validate.Validate(doc); err != nil {
				if cc.Renderer.EffectiveMode() == output.ModeJSON {
					_ = cc.Renderer.JSON(map[string]any{"valid": false, "error": err.Error()})
				}
				return fmt.Errorf("validation failed: %w", err)
			}

			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(map[string]any{"valid": true})
			}
			cc.Renderer.Success(fmt.Sprintf("%s is valid (%d channels, %d operations, %d messages)",
				args[0], len(doc.Channels), len(doc.Operations), len(doc.Components.Messages)))
			return nil
		},
	}
}
