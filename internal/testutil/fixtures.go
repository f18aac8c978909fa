// Package testutil provides fixture tables for command tests.
//
// The values are chosen so every difference is exact in binary floating
// point, which keeps golden output stable.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultTable is the file name the commands read when given no table.
const DefaultTable = "Si_converger.dat"

// InputsTable is a run of the input convergence tests: a cutoff sweep on
// 4x4x4, a k-point sweep at 400 eV and a fine G-max sweep at 400 eV. Every
// panel of the full preset gets exactly one qualifying group.
const InputsTable = `Kpoint Cutoff_(eV/ion) fine_Gmax_(1/A) fine_grid_scale Cutoff_run Kpt_run fGmax_run Total_time_(s) Energy_(eV/ion) Force_(eV/A) Stress_(GPa)
4x4x4 200 12 2 T F F 10 1.5 0.5 0.75
4x4x4 300 12 2 T F F 20 1.25 0.25 0.625
4x4x4 400 12 2 T F F 30 1 0.25 0.5
2x2x2 400 12 2 F T F 5 1.5 0.5 1
8x8x8 400 12 2 F T F 90 1 0.25 0.5
4x4x4 400 16 1 F F T 45 1 0.25 0.5
4x4x4 400 14 1 F F T 40 1.125 0.25 0.5
`

// OutputsTable is a run of output convergence tests without run flags or
// timings, as drawn by the bands preset.
const OutputsTable = `Kpoint Cutoff_(eV) Energy_(eV/ion) Force_(eV/A) Stress_(GPa)
4x4x4 200 -107.5 0.5 0.75
4x4x4 300 -107.25 0.25 0.5
4x4x4 400 -107 0.25 0.5
2x2x2 400 -106.5 0.5 1
8x8x8 400 -107 0.25 0.5
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Workdir creates a temporary directory holding content as DefaultTable and
// makes it the working directory for the rest of the test.
func Workdir(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, DefaultTable, content)
	t.Chdir(dir)
	return dir
}
