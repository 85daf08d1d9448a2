package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/philbrick/internal/circuit"
	"github.com/roach88/philbrick/internal/engine"
	"github.com/roach88/philbrick/internal/scope"
	"github.com/roach88/philbrick/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Steps    int
	DT       float64
	Output   string
	Database string
	Quiet    bool
}

// NewRunCommand creates the run command: the headless batch runner.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <circuit.yaml>",
		Short: "Run a circuit simulation headlessly",
		Long: `Run a circuit simulation without the TUI, for batch processing and
data collection.

The circuit file is validated, resolved into a machine and patch bay,
and driven for the requested number of propagate/step cycles. Scope
channels declared in the circuit are sampled every tick and can be
written to CSV and/or recorded to a SQLite run database.

Example:
  philbrick run circuits/harmonic.yaml --steps 5000 --output data.csv
  philbrick run circuits/harmonic.yaml --steps 1000 --record runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Steps, "steps", "n", 1000, "number of simulation steps")
	cmd.Flags().Float64Var(&opts.DT, "dt", engine.DefaultDT, "timestep in seconds")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "CSV output file for sampled channels")
	cmd.Flags().StringVar(&opts.Database, "record", "", "record sampled channels to a SQLite run database")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

func runSimulation(ctx context.Context, opts *RunOptions, circuitFile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Debug("loading circuit", "file", circuitFile, "dt", opts.DT)
	machine, bay, def, err := circuit.LoadFile(circuitFile, opts.DT)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load circuit", err)
	}
	slog.Info("circuit loaded",
		"circuit", def.Name,
		"components", len(machine.Components()),
		"patches", len(bay.Connections()))

	var channels []circuit.ChannelDecl
	if def.Scope != nil {
		channels = def.Scope.Channels
	}
	sampler, err := scope.NewSampler(machine, channels, 0)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve scope channels", err)
	}

	var rec *store.Store
	var runID string
	if opts.Database != "" {
		rec, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run database", err)
		}
		defer func() {
			if closeErr := rec.Close(); closeErr != nil {
				slog.Error("error closing run database", "error", closeErr)
			}
		}()
		runID, err = rec.BeginRun(ctx, def.Name, machine.DT(), opts.Steps)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to begin recorded run", err)
		}
		slog.Info("recording run", "id", runID, "db", opts.Database)
	}

	var csvWriter *csv.Writer
	if opts.Output != "" {
		f, ferr := os.Create(opts.Output)
		if ferr != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", ferr)
		}
		defer f.Close()
		csvWriter = csv.NewWriter(f)
		defer csvWriter.Flush()
		header := append([]string{"time"}, sampler.Labels()...)
		if err := csvWriter.Write(header); err != nil {
			return WrapExitError(ExitCommandError, "failed to write CSV header", err)
		}
	}

	labels := sampler.Labels()
	progressEvery := opts.Steps / 10
	for i := 0; i < opts.Steps; i++ {
		// Canonical tick protocol: propagate moves last tick's outputs
		// across patch edges, step recomputes from current inputs.
		bay.Propagate()
		machine.Step()
		sampler.Sample(machine.Time())

		values := sampler.Latest()
		if csvWriter != nil {
			row := make([]string, 0, len(values)+1)
			row = append(row, strconv.FormatFloat(machine.Time(), 'g', -1, 64))
			for _, v := range values {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			if err := csvWriter.Write(row); err != nil {
				return WrapExitError(ExitCommandError, "failed to write CSV row", err)
			}
		}
		if rec != nil {
			if err := rec.WriteSamples(ctx, runID, i, labels, values); err != nil {
				return WrapExitError(ExitCommandError, "failed to record samples", err)
			}
		}
		if !opts.Quiet && progressEvery > 0 && (i+1)%progressEvery == 0 {
			slog.Info("progress", "step", i+1, "steps", opts.Steps, "time", machine.Time())
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(os.Stdout, "ran %d steps of %q (t=%.6gs)\n", opts.Steps, def.Name, machine.Time())
		for i, label := range labels {
			st := sampler.ChannelStats(i)
			fmt.Fprintf(os.Stdout, "  %-24s min=%.6g max=%.6g mean=%.6g\n", label, st.Min, st.Max, st.Mean)
		}
	}
	return nil
}
