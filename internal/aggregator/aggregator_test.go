package aggregator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

func rec(band, role, sev int) types.CasualtyRecord {
	return types.CasualtyRecord{AgeBand: band, Role: role, Severity: sev}
}

func TestFilterDropsMissingAndDisallowed(t *testing.T) {
	in := []types.CasualtyRecord{
		rec(1, 1, 3),
		rec(MissingAgeBand, 1, 1), // missing age band
		rec(2, 9, 2),              // role outside allowed set
		rec(3, 3, 1),
		rec(MissingAgeBand, 9, 3),
	}
	out := Filter(in, Options{})
	require.Len(t, out, 2)
	assert.Equal(t, []types.CasualtyRecord{rec(1, 1, 3), rec(3, 3, 1)}, out)
	// input untouched
	assert.Len(t, in, 5)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, Options{}))
	assert.Empty(t, Filter([]types.CasualtyRecord{}, Options{}))
}

func TestFilterUnknownSeverityKnob(t *testing.T) {
	in := []types.CasualtyRecord{
		rec(1, 1, 1),
		rec(1, 1, 7), // unknown severity code
	}
	assert.Len(t, Filter(in, Options{}), 2)
	assert.Len(t, Filter(in, Options{DropUnknownSeverity: true}), 1)
}

func TestAggregateScenarioA(t *testing.T) {
	// 10 records: 6 in (1,1) of which 2 flagged, 4 in (2,2) none flagged.
	var in []types.CasualtyRecord
	in = append(in, rec(1, 1, 1), rec(1, 1, 2))
	for i := 0; i < 4; i++ {
		in = append(in, rec(1, 1, 3))
	}
	for i := 0; i < 4; i++ {
		in = append(in, rec(2, 2, 3))
	}

	cells := Aggregate(Filter(in, Options{}))
	require.Len(t, cells, 2)

	assert.Equal(t, types.CellKey{AgeBand: 1, Role: 1}, cells[0].Key)
	assert.Equal(t, 6, cells[0].Total)
	assert.Equal(t, 2, cells[0].FlaggedCount)
	assert.InDelta(t, 2.0/6.0, cells[0].FlaggedRate, 1e-12)

	assert.Equal(t, types.CellKey{AgeBand: 2, Role: 2}, cells[1].Key)
	assert.Equal(t, 4, cells[1].Total)
	assert.Equal(t, 0, cells[1].FlaggedCount)
	assert.Zero(t, cells[1].FlaggedRate)
}

func TestAggregateScenarioBAllMissing(t *testing.T) {
	in := []types.CasualtyRecord{
		rec(MissingAgeBand, 1, 1),
		rec(MissingAgeBand, 2, 2),
		rec(MissingAgeBand, 3, 3),
	}
	filtered := Filter(in, Options{})
	assert.Empty(t, filtered)
	assert.Empty(t, Aggregate(filtered))
}

func TestAggregateConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var in []types.CasualtyRecord
	for i := 0; i < 500; i++ {
		in = append(in, rec(rng.Intn(13)-1, rng.Intn(5), rng.Intn(4)))
	}
	filtered := Filter(in, Options{})
	cells := Aggregate(filtered)

	sum := 0
	for _, c := range cells {
		sum += c.Total
		assert.Positive(t, c.Total)
		assert.GreaterOrEqual(t, c.FlaggedCount, 0)
		assert.LessOrEqual(t, c.FlaggedCount, c.Total)
		assert.InDelta(t, float64(c.FlaggedCount)/float64(c.Total), c.FlaggedRate, 1e-12)
	}
	assert.Equal(t, len(filtered), sum)
}

func TestAggregateDeterministicUnderReordering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var in []types.CasualtyRecord
	for i := 0; i < 200; i++ {
		in = append(in, rec(rng.Intn(11)+1, rng.Intn(3)+1, rng.Intn(3)+1))
	}
	first := Aggregate(in)

	shuffled := make([]types.CasualtyRecord, len(in))
	copy(shuffled, in)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	second := Aggregate(shuffled)

	assert.Equal(t, first, second)
}

func TestAggregateSparse(t *testing.T) {
	cells := Aggregate([]types.CasualtyRecord{rec(5, 2, 1)})
	require.Len(t, cells, 1)
	// no zero-total cells are ever emitted for the other 32 pairs
	assert.Equal(t, types.CellKey{AgeBand: 5, Role: 2}, cells[0].Key)
}

func TestFlagged(t *testing.T) {
	assert.True(t, Flagged(1))
	assert.True(t, Flagged(2))
	assert.False(t, Flagged(3))
	assert.False(t, Flagged(0))
	assert.False(t, Flagged(-1))
}
