package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/philbrick/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded simulation runs",
		Long: `Inspect runs recorded with "philbrick run --record".

Without --run, lists all recorded runs newest first. With --run,
dumps that run's samples as tick/channel/value lines.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to run database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to dump samples for")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(cmd *cobra.Command, opts *TraceOptions) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.RunID == "" {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "no recorded runs")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %-24s dt=%g steps=%d started=%s\n",
				r.ID, r.Circuit, r.DT, r.Steps, r.StartedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	samples, err := st.ReadSamples(ctx, opts.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read samples", err)
	}
	for _, s := range samples {
		fmt.Fprintf(out, "%6d  %-24s %.9g\n", s.Tick, s.Channel, s.Value)
	}
	return nil
}
