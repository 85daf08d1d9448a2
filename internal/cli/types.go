package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/philbrick/internal/registry"
)

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered component and subcircuit types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			if err := registry.RegisterLibrary(reg); err != nil {
				return WrapExitError(ExitCommandError, "failed to build registry", err)
			}
			for _, name := range reg.ListTypes() {
				kind := "primitive"
				if reg.IsTemplate(name) {
					kind = "subcircuit"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, kind)
			}
			return nil
		},
	}
	return cmd
}
