// Package pipeline runs the one-shot ingestion pass: load the source,
// filter, aggregate. It runs exactly once after the source is available;
// if loading fails nothing downstream is built.
package pipeline

import (
	"fmt"

	"github.com/ufabox/InfoViz-25W-A3/internal/aggregator"
	"github.com/ufabox/InfoViz-25W-A3/internal/dataset"
	"github.com/ufabox/InfoViz-25W-A3/internal/logger"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

// Result is the aggregation outcome. Cells is read-only from here on.
type Result struct {
	Cells    []types.Cell
	Loaded   int
	Retained int
}

// Run loads and aggregates the casualty table at path. Any load error is
// returned as-is with no partial result.
func Run(path string, opts aggregator.Options) (Result, error) {
	log := logger.New().WithComponent("pipeline").WithField("path", path)

	records, err := dataset.Load(path)
	if err != nil {
		return Result{}, fmt.Errorf("load records: %w", err)
	}

	filtered := aggregator.Filter(records, opts)
	cells := aggregator.Aggregate(filtered)

	log.WithFields(map[string]interface{}{
		"loaded":   len(records),
		"retained": len(filtered),
		"cells":    len(cells),
	}).Info("aggregation complete")

	return Result{Cells: cells, Loaded: len(records), Retained: len(filtered)}, nil
}
