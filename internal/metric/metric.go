// Package metric defines the selectable per-cell metrics. Each metric is a
// named pure extractor plus a description string for the UI; adding one
// means adding a single registry entry.
package metric

import (
	"errors"

	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

const (
	Count = "count"
	Rate  = "rate"
)

// ErrUnknown is returned for a metric name outside the registry. Selection
// must fail loudly rather than fall back to the default.
var ErrUnknown = errors.New("unknown metric")

type Metric struct {
	Name        string
	Description string
	Extract     func(types.Cell) float64
}

// all lists the metrics in UI toggle order. Adding a metric means adding
// one entry here; the registry and name list derive from it.
var all = []Metric{
	{
		Name:        Count,
		Description: "Total number of casualties recorded for the age band and role.",
		Extract:     func(c types.Cell) float64 { return float64(c.Total) },
	},
	{
		Name:        Rate,
		Description: "Share of casualties in the cell that were killed or seriously injured.",
		Extract:     func(c types.Cell) float64 { return c.FlaggedRate },
	},
}

var registry = func() map[string]Metric {
	m := make(map[string]Metric, len(all))
	for _, x := range all {
		m[x.Name] = x
	}
	return m
}()

// Default is the metric active before any selection.
const Default = Count

// Lookup resolves a metric name.
func Lookup(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return Metric{}, ErrUnknown
	}
	return m, nil
}

// Names returns the registered metric names in registration order.
func Names() []string {
	out := make([]string, len(all))
	for i, m := range all {
		out[i] = m.Name
	}
	return out
}

// DomainMax is the maximum of the metric over the cell table. An empty
// table yields 1 so a color scale built on the result stays well-formed.
func (m Metric) DomainMax(cells []types.Cell) float64 {
	if len(cells) == 0 {
		return 1
	}
	max := m.Extract(cells[0])
	for _, c := range cells[1:] {
		if v := m.Extract(c); v > max {
			max = v
		}
	}
	return max
}
