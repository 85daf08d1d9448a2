package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/philbrick/internal/store"
)

const rampCircuit = `
name: ramp
components:
  - name: SRC
    type: Constant
    params:
      value: 1.0
  - name: INT
    type: Integrator
    params:
      initial: 0.0
      gain: 1.0
patches:
  - [SRC.out, INT.in]
scope:
  channels:
    - source: INT.out
      label: volts
`

func writeCircuit(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"run", "validate", "types", "save", "trace"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRunCommand_CSVOutput(t *testing.T) {
	path := writeCircuit(t, rampCircuit)
	csvPath := filepath.Join(t.TempDir(), "out.csv")

	_, err := execute(t, "run", path, "--steps", "10", "--dt", "0.1", "-o", csvPath, "-q")
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 11)
	assert.Equal(t, []string{"time", "volts"}, rows[0])

	// Unit input integrated over 10 steps of 0.1s reaches ~1.0.
	last, err := strconv.ParseFloat(rows[10][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, last, 1e-9)
}

func TestRunCommand_RecordsToDatabase(t *testing.T) {
	path := writeCircuit(t, rampCircuit)
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "run", path, "--steps", "5", "--dt", "0.1", "--record", dbPath, "-q")
	require.NoError(t, err)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	runs, err := st.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ramp", runs[0].Circuit)
	assert.Equal(t, 5, runs[0].Steps)

	samples, err := st.ReadSamples(ctx, runs[0].ID)
	require.NoError(t, err)
	require.Len(t, samples, 5)
	assert.Equal(t, "volts", samples[0].Channel)
	assert.InDelta(t, 0.5, samples[4].Value, 1e-9)
}

func TestRunCommand_BadCircuit(t *testing.T) {
	path := writeCircuit(t, "name: broken\ncomponents:\n  - name: X\n    type: FluxCapacitor\n")

	_, err := execute(t, "run", path, "-q")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateCommand(t *testing.T) {
	path := writeCircuit(t, rampCircuit)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "ramp: valid (2 components, 1 patches)\n", out)
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := writeCircuit(t, "name: broken\npatches:\n  - [onlyone]\n")

	_, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestTypesCommand(t *testing.T) {
	out, err := execute(t, "types")
	require.NoError(t, err)

	assert.Contains(t, out, "Integrator")
	assert.Contains(t, out, "VoltageSource")
	softmaxLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Softmax") {
			softmaxLine = line
		}
	}
	assert.Contains(t, softmaxLine, "subcircuit")
}

func TestSaveCommand_FlattensSubcircuits(t *testing.T) {
	path := writeCircuit(t, `
name: wrapped
components:
  - name: SIX
    type: SixTimes
subcircuits:
  SixTimes:
    name: SixTimes
    inputs: [in]
    outputs: [out]
    components:
      - name: A
        type: Coefficient
        params:
          k: 2.0
      - name: B
        type: Coefficient
        params:
          k: 3.0
    patches:
      - [A.out, B.in]
    input_map:
      in: A.in
    output_map:
      out: B.out
`)

	out, err := execute(t, "save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "name: wrapped")
	assert.Contains(t, out, "SIX.A")
	assert.Contains(t, out, "SIX.B")
	assert.Contains(t, out, "[SIX.A.out, SIX.B.in]")
	assert.NotContains(t, out, "subcircuits:")
}

func TestTraceCommand_EmptyAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "no recorded runs\n", out)

	path := writeCircuit(t, rampCircuit)
	_, err = execute(t, "run", path, "--steps", "2", "--record", dbPath, "-q")
	require.NoError(t, err)

	out, err = execute(t, "trace", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ramp")

	runID := strings.Fields(out)[0]
	out, err = execute(t, "trace", "--db", dbPath, "--run", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "volts")
}
