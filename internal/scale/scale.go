// Package scale owns the active-metric selection and the numeric-to-color
// mapping. The mapping's domain is [0, domainMax] where domainMax is
// recomputed from the cell table on every selection change; the lower bound
// never moves.
package scale

import (
	"fmt"

	"github.com/ufabox/InfoViz-25W-A3/internal/metric"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

// Sequential red ramp, light to dark.
var (
	rampLow  = rgb{0xff, 0xf5, 0xf0}
	rampHigh = rgb{0x99, 0x00, 0x0d}
)

type rgb struct{ r, g, b uint8 }

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// RampLow is the color at the bottom of the domain.
func RampLow() string { return rampLow.hex() }

// RampHigh is the color at domainMax.
func RampHigh() string { return rampHigh.hex() }

// Manager maps cells to colors under the currently selected metric. The
// cell table is fixed at construction; only the selection mutates.
type Manager struct {
	cells     []types.Cell
	active    metric.Metric
	domainMax float64
}

// New builds a manager over an immutable cell table with the given initial
// metric. The name is validated the same way as a runtime selection.
func New(cells []types.Cell, initial string) (*Manager, error) {
	m := &Manager{cells: cells}
	if err := m.SetMetric(initial); err != nil {
		return nil, err
	}
	return m, nil
}

// SetMetric switches the active metric and rebinds the color domain to the
// new metric's maximum over the cell table. On an unknown name the previous
// selection is left untouched.
func (m *Manager) SetMetric(name string) error {
	sel, err := metric.Lookup(name)
	if err != nil {
		return fmt.Errorf("set metric %q: %w", name, err)
	}
	m.active = sel
	m.domainMax = sel.DomainMax(m.cells)
	return nil
}

// Current returns the active metric.
func (m *Manager) Current() metric.Metric {
	return m.active
}

// DomainMax returns the upper bound of the color domain.
func (m *Manager) DomainMax() float64 {
	return m.domainMax
}

// Value extracts the active metric's value for a cell.
func (m *Manager) Value(c types.Cell) float64 {
	return m.active.Extract(c)
}

// ColorFor maps a cell to a hex color on the active metric's scale.
// Monotonic: a larger metric value never yields a lighter color.
func (m *Manager) ColorFor(c types.Cell) string {
	t := 0.0
	if m.domainMax > 0 {
		t = m.Value(c) / m.domainMax
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lerp(rampLow, rampHigh, t).hex()
}

func lerp(lo, hi rgb, t float64) rgb {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return rgb{mix(lo.r, hi.r), mix(lo.g, hi.g), mix(lo.b, hi.b)}
}
