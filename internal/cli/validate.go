package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/philbrick/internal/circuit"
	"github.com/roach88/philbrick/internal/engine"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <circuit.yaml>",
		Short: "Validate a circuit file without running it",
		Long: `Validate a circuit file: schema check against the embedded CUE schema,
then a dry-run resolution into a throwaway machine and patch bay so
that unknown types, bad port references, and subcircuit mapping errors
surface before a real run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, circuitFile string, cmd *cobra.Command) error {
	machine, bay, def, err := circuit.LoadFile(circuitFile, engine.DefaultDT)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid circuit", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d components, %d patches)\n",
		def.Name, len(machine.Components()), len(bay.Connections()))
	return nil
}
