package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amonclus/percolate/config"
	"github.com/amonclus/percolate/dimacs"
	"github.com/amonclus/percolate/report"
)

// execute runs a fresh command tree with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

// TestRun_CSV sweeps a small grid and checks the series shape.
func TestRun_CSV(t *testing.T) {
	out, _, err := execute(t, "run", "--rows", "4", "--cols", "4", "--step", "0.25", "--seed", "3", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"q", "components", "largest_cluster", "nsc"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, []string{"1", "1", "16", "1"}, records[5])
}

// TestRun_SiteJSON runs the site variant and decodes the report.
func TestRun_SiteJSON(t *testing.T) {
	out, _, err := execute(t, "run", "--mode", "site", "--rows", "5", "--cols", "5", "--step", "0.1", "--seed", "9", "--format", "json")
	require.NoError(t, err)

	var s report.Sweep
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "site", string(s.Mode))
	assert.Equal(t, 25, s.N)
	assert.Equal(t, int64(9), s.Seed)
	assert.True(t, s.Percolated)
	assert.Len(t, s.Results, 11)
}

// TestGenerate_ThenRunFromFile writes a grid, then sweeps it from disk with
// metrics export and a YAML report file.
func TestGenerate_ThenRunFromFile(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "grid.dimacs")
	_, _, err := execute(t, "generate", "grid", "--rows", "3", "--cols", "3", "-o", graphPath)
	require.NoError(t, err)

	g, err := dimacs.ReadFile(graphPath)
	require.NoError(t, err)
	assert.Equal(t, 9, g.N)
	assert.True(t, g.IsGrid())

	reportPath := filepath.Join(dir, "sweep.yaml")
	metricsPath := filepath.Join(dir, "percolate.prom")
	_, _, err = execute(t, "run", "--graph", graphPath, "--step", "0.5", "--seed", "1",
		"--format", "yaml", "-o", reportPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: bond")
	assert.Contains(t, string(data), "largest_cluster: 9")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `percolate_steps_total{mode="bond"} 3`)
}

// TestGenerate_ErdosRenyiStdout writes a connected ER graph to stdout.
func TestGenerate_ErdosRenyiStdout(t *testing.T) {
	out, _, err := execute(t, "generate", "er", "--n", "20", "--p", "0.1", "--connected", "--seed", "5")
	require.NoError(t, err)

	g, err := dimacs.Read(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, 20, g.N)
	assert.GreaterOrEqual(t, len(g.Edges), 19)
}

// TestEnsemble_JSON runs a fixed-size ensemble.
func TestEnsemble_JSON(t *testing.T) {
	out, _, err := execute(t, "ensemble", "--rows", "4", "--cols", "4", "--runs", "6", "--workers", "2",
		"--step", "0.25", "--seed", "11", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 6.0, doc["runs"])
	assert.Equal(t, 6.0, doc["percolated"])
	curve, ok := doc["curve"].([]any)
	require.True(t, ok)
	assert.Len(t, curve, 5)
	assert.NotContains(t, doc, "beta_fit")
}

// TestEnsemble_FitTooFewPointsWarns keeps the summary when the fit fails.
func TestEnsemble_FitTooFewPointsWarns(t *testing.T) {
	out, logs, err := execute(t, "ensemble", "--rows", "3", "--cols", "3", "--runs", "2", "--step", "0.5",
		"--fit-pc", "0.9", "--fit-pc-max", "1", "--format", "json", "--log-level", "warn")
	require.NoError(t, err)
	assert.Contains(t, logs, "beta fit skipped")
	assert.Contains(t, out, `"runs": 2`)
}

// TestInvalidConfig surfaces validation errors.
func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "run", "--step", "2")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, "run", "--format", "xml")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = execute(t, "generate", "torus")
	assert.Error(t, err)
}

// TestRun_ConfigFile reads settings from YAML.
func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "percolate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("step: 0.5\nformat: csv\ngraph:\n  rows: 2\n  cols: 2\n"), 0o600))

	out, _, err := execute(t, "run", "--config", path, "--seed", "2")
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewBufferString(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}
