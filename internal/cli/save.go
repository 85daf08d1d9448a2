package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/philbrick/internal/circuit"
	"github.com/roach88/philbrick/internal/engine"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Output string
	Name   string
}

// NewSaveCommand creates the save command.
//
// Loading a circuit and saving it again flattens subcircuit instances
// into their prefixed primitives, which is useful for inspecting what
// a macro actually expands to.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "save <circuit.yaml>",
		Short:         "Resolve a circuit and save it back as YAML",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			machine, bay, def, err := circuit.LoadFile(args[0], engine.DefaultDT)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load circuit", err)
			}
			name := opts.Name
			if name == "" {
				name = def.Name
			}
			out := cmd.OutOrStdout()
			if opts.Output != "" {
				f, ferr := os.Create(opts.Output)
				if ferr != nil {
					return WrapExitError(ExitCommandError, "failed to create output file", ferr)
				}
				defer f.Close()
				out = f
			}
			saver := circuit.NewSaver(machine, bay)
			if err := saver.WriteYAML(out, name, def.Description); err != nil {
				return WrapExitError(ExitCommandError, "failed to save circuit", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "circuit name to save under (default: source name)")

	return cmd
}
