// Package aggregator turns the flat casualty record list into the sparse
// 2-D cell table that drives the grid. Filtering and grouping work on raw
// category codes; labels are applied downstream.
package aggregator

import (
	"sort"

	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

// MissingAgeBand is the sentinel the source uses for an unrecorded age band.
const MissingAgeBand = -1

var allowedRoles = map[int]bool{
	1: true, // driver or rider
	2: true, // passenger
	3: true, // pedestrian
}

// KSI severities: fatal and serious.
var flaggedSeverities = map[int]bool{
	1: true,
	2: true,
}

var knownSeverities = map[int]bool{
	1: true,
	2: true,
	3: true,
}

// Options controls record exclusion beyond the fixed category rules.
type Options struct {
	// DropUnknownSeverity excludes records whose severity code is outside
	// the known set before aggregation. Off by default: such records are
	// kept and counted as unflagged.
	DropUnknownSeverity bool
}

// Flagged reports whether a severity code is in the KSI subset.
func Flagged(severity int) bool {
	return flaggedSeverities[severity]
}

// Filter drops records with a missing age band or a role outside the
// allowed set. Pure: the input slice is never mutated. Empty in, empty out.
func Filter(records []types.CasualtyRecord, opts Options) []types.CasualtyRecord {
	out := make([]types.CasualtyRecord, 0, len(records))
	for _, r := range records {
		if r.AgeBand == MissingAgeBand {
			continue
		}
		if !allowedRoles[r.Role] {
			continue
		}
		if opts.DropUnknownSeverity && !knownSeverities[r.Severity] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Aggregate groups filtered records by (age band, role) and reduces each
// group to its statistics. Only observed pairs are emitted, so every cell
// has Total > 0. The result is sorted by key, making the output independent
// of input order.
func Aggregate(records []types.CasualtyRecord) []types.Cell {
	total := map[types.CellKey]int{}
	flagged := map[types.CellKey]int{}
	for _, r := range records {
		k := types.CellKey{AgeBand: r.AgeBand, Role: r.Role}
		total[k]++
		if Flagged(r.Severity) {
			flagged[k]++
		}
	}

	cells := make([]types.Cell, 0, len(total))
	for k, n := range total {
		c := types.Cell{Key: k, Total: n, FlaggedCount: flagged[k]}
		if n > 0 {
			c.FlaggedRate = float64(c.FlaggedCount) / float64(n)
		}
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Key.AgeBand != cells[j].Key.AgeBand {
			return cells[i].Key.AgeBand < cells[j].Key.AgeBand
		}
		return cells[i].Key.Role < cells[j].Key.Role
	})
	return cells
}
