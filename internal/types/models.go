package types

// CasualtyRecord is one observation from the source table. Records exist
// only during ingestion; after aggregation the cell table is authoritative
// and records are not retained.
type CasualtyRecord struct {
	AgeBand  int `json:"age_band"`
	Role     int `json:"role"`
	Severity int `json:"severity"`
}

// CellKey identifies one grid cell by its pair of category codes.
type CellKey struct {
	AgeBand int `json:"age_band"`
	Role    int `json:"role"`
}

// Cell is the aggregation unit for one observed (age band, role) pair.
// Invariant: 0 <= FlaggedCount <= Total, and Total > 0 for every emitted
// cell (unobserved pairs are never materialized).
type Cell struct {
	Key          CellKey `json:"key"`
	Total        int     `json:"total"`
	FlaggedCount int     `json:"flagged_count"`
	FlaggedRate  float64 `json:"flagged_rate"`
}

// CellView is a Cell plus its current metric value and color, ready for
// binding to a visual element.
type CellView struct {
	Cell
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// GridResponse is the full payload the renderer consumes: the painted cell
// table, axis label tables, and the active metric's description and domain.
type GridResponse struct {
	Metric            string         `json:"metric"`
	MetricDescription string         `json:"metric_description"`
	DomainMax         float64        `json:"domain_max"`
	Cells             []CellView     `json:"cells"`
	AgeBandLabels     map[int]string `json:"age_band_labels"`
	RoleLabels        map[int]string `json:"role_labels"`
}
