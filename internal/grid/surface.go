// Package grid is the interaction surface: it binds the aggregated cell
// table to the visual grid and exposes the command interface the UI drives
// (Select, Hover, Unhover). It holds no aggregation logic; a repaint is an
// explicit Snapshot call after each successful Select.
package grid

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ufabox/InfoViz-25W-A3/internal/labels"
	"github.com/ufabox/InfoViz-25W-A3/internal/logger"
	"github.com/ufabox/InfoViz-25W-A3/internal/scale"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

type Surface struct {
	mu    sync.Mutex
	cells []types.Cell
	byKey map[types.CellKey]types.Cell
	scale *scale.Manager
	hover *types.CellKey
	log   *logrus.Entry
}

// New builds a surface over an immutable cell table and its scale manager.
func New(cells []types.Cell, mgr *scale.Manager) *Surface {
	byKey := make(map[types.CellKey]types.Cell, len(cells))
	for _, c := range cells {
		byKey[c.Key] = c
	}
	return &Surface{
		cells: cells,
		byKey: byKey,
		scale: mgr,
		log:   logger.New().WithComponent("grid"),
	}
}

// Select applies a metric selection. Each selection is handled to
// completion before the next; the caller repaints via Snapshot afterwards.
// Unknown names leave the surface untouched.
func (s *Surface) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scale.SetMetric(name); err != nil {
		return err
	}
	s.log.WithField("metric", name).
		WithField("domain_max", s.scale.DomainMax()).
		Info("metric selected")
	return nil
}

// Snapshot is the repaint: every cell re-queried against the currently
// active metric's scale.
func (s *Surface) Snapshot() types.GridResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]types.CellView, 0, len(s.cells))
	for _, c := range s.cells {
		views = append(views, types.CellView{
			Cell:  c,
			Value: s.scale.Value(c),
			Color: s.scale.ColorFor(c),
		})
	}
	active := s.scale.Current()
	return types.GridResponse{
		Metric:            active.Name,
		MetricDescription: active.Description,
		DomainMax:         s.scale.DomainMax(),
		Cells:             views,
		AgeBandLabels:     labels.AgeBands,
		RoleLabels:        labels.Roles,
	}
}

// Hover marks a cell as the transient highlight target, most recent wins.
// Hovering a key with no observed cell clears the highlight and reports
// false; the full Cartesian grid has holes where nothing was observed.
func (s *Surface) Hover(key types.CellKey) (types.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byKey[key]
	if !ok {
		s.hover = nil
		return types.Cell{}, false
	}
	s.hover = &key
	return c, true
}

// Unhover clears any transient highlight.
func (s *Surface) Unhover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hover = nil
}

// Hovered reports the current highlight target, if any.
func (s *Surface) Hovered() (types.CellKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hover == nil {
		return types.CellKey{}, false
	}
	return *s.hover, true
}

// Cell looks up an observed cell by key.
func (s *Surface) Cell(key types.CellKey) (types.Cell, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byKey[key]
	return c, ok
}
