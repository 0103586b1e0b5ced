package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufabox/InfoViz-25W-A3/internal/aggregator"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

func TestRunEndToEnd(t *testing.T) {
	csv := "age,class,severity\n" +
		"1,1,1\n" +
		"1,1,3\n" +
		"1,1,3\n" +
		"2,2,2\n" +
		"-1,1,1\n" + // dropped: missing age band
		"3,9,1\n" // dropped: role outside allowed set
	path := filepath.Join(t.TempDir(), "casualties.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	res, err := Run(path, aggregator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Loaded)
	assert.Equal(t, 4, res.Retained)
	require.Len(t, res.Cells, 2)

	sum := 0
	for _, c := range res.Cells {
		sum += c.Total
	}
	assert.Equal(t, res.Retained, sum)

	assert.Equal(t, types.CellKey{AgeBand: 1, Role: 1}, res.Cells[0].Key)
	assert.Equal(t, 3, res.Cells[0].Total)
	assert.Equal(t, 1, res.Cells[0].FlaggedCount)
}

func TestRunLoadFailureBuildsNothing(t *testing.T) {
	res, err := Run(filepath.Join(t.TempDir(), "absent.csv"), aggregator.Options{})
	assert.Error(t, err)
	assert.Empty(t, res.Cells)
}

func TestRunEmptySourceYieldsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("age,class,severity\n"), 0o644))

	res, err := Run(path, aggregator.Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Loaded)
	assert.Empty(t, res.Cells)
}

func TestRunZeroByteSourceYieldsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	res, err := Run(path, aggregator.Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Loaded)
	assert.Empty(t, res.Cells)
}
