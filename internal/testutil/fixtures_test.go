package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/converger/internal/table"
)

func TestFixtures_Parse(t *testing.T) {
	inputs, err := table.Parse(strings.NewReader(InputsTable), "inputs")
	require.NoError(t, err)
	assert.Len(t, inputs.Rows, 7)
	assert.True(t, inputs.Has(table.ColFineGmax))
	assert.True(t, inputs.Has(table.ColKptRun))

	outputs, err := table.Parse(strings.NewReader(OutputsTable), "outputs")
	require.NoError(t, err)
	assert.Len(t, outputs.Rows, 5)
	assert.False(t, outputs.Has(table.ColTotalTime))
	assert.Equal(t, "eV", outputs.Unit(table.ColCutoff))
}

func TestWorkdir(t *testing.T) {
	dir := Workdir(t, OutputsTable)

	data, err := os.ReadFile(DefaultTable)
	require.NoError(t, err)
	assert.Equal(t, OutputsTable, string(data))

	wd, err := os.Getwd()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
