package grid

import (
	"fmt"
	"html/template"
	"io"

	"github.com/ufabox/InfoViz-25W-A3/internal/labels"
	"github.com/ufabox/InfoViz-25W-A3/internal/metric"
	"github.com/ufabox/InfoViz-25W-A3/internal/scale"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

const tmplGrid = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Casualty Grid</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
.metric-sel{display:flex;gap:4px;margin-left:auto}
.metric-sel a{font-size:11px;padding:2px 8px;border:1px solid #30363d;border-radius:4px;color:#8b949e}
.metric-sel a.active{background:#1f6feb;border-color:#1f6feb;color:#fff}
main{padding:16px}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:4px}
.desc{color:#8b949e;font-size:12px;margin-bottom:12px}
table{border-collapse:collapse;font-size:12px}
th{text-align:center;padding:6px 10px;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em}
th.row-lbl{text-align:right}
td.cell{width:72px;height:34px;border:1px solid #0d1117;text-align:center;color:#0d1117;font-weight:600}
td.cell:hover{outline:2px solid #58a6ff}
td.empty{background:#161b22;color:#30363d}
.legend{margin-top:12px;color:#8b949e;font-size:11px}
.legend .swatch{display:inline-block;width:140px;height:10px;vertical-align:middle;margin:0 6px;background:linear-gradient(to right,{{.RampLow}},{{.RampHigh}})}
</style>
</head>
<body>
<nav>
  <span class="brand">Casualty Grid</span>
  <span class="metric-sel">
  {{- range .Metrics}}
    <a href="/?metric={{.Name}}"{{if .Active}} class="active"{{end}}>{{.Name}}</a>
  {{- end}}
  </span>
</nav>
<main>
<h1>Casualties by age band and role</h1>
<div class="desc">{{.Description}}</div>
<table>
<tr><th class="row-lbl">Age band</th>{{range .Cols}}<th>{{.Label}}</th>{{end}}</tr>
{{- range .Rows}}
<tr><th class="row-lbl">{{.Label}}</th>
{{- range .Cells}}
{{- if .Has}}
<td class="cell" style="background:{{.Color}}" title="{{.Title}}">{{.Text}}</td>
{{- else}}
<td class="cell empty" title="no casualties observed">&middot;</td>
{{- end}}
{{- end}}
</tr>
{{- end}}
</table>
<div class="legend">0<span class="swatch"></span>{{.DomainLabel}} ({{.Metric}} max)</div>
</main>
</body>
</html>`

var gridTmpl = template.Must(template.New("grid").Parse(tmplGrid))

type pageMetric struct {
	Name   string
	Active bool
}

type pageCol struct {
	Code  int
	Label string
}

type pageCell struct {
	Has   bool
	Color string
	Title string
	Text  string
}

type pageRow struct {
	Label string
	Cells []pageCell
}

type pageData struct {
	Metric      string
	Description string
	DomainLabel string
	RampLow     template.CSS
	RampHigh    template.CSS
	Metrics     []pageMetric
	Cols        []pageCol
	Rows        []pageRow
}

// RenderHTML paints the full Cartesian grid from the current snapshot.
// Pairs never observed render as empty cells.
func (s *Surface) RenderHTML(w io.Writer) error {
	snap := s.Snapshot()

	byKey := make(map[types.CellKey]types.CellView, len(snap.Cells))
	for _, v := range snap.Cells {
		byKey[v.Key] = v
	}

	var mets []pageMetric
	for _, name := range metric.Names() {
		mets = append(mets, pageMetric{Name: name, Active: name == snap.Metric})
	}

	var cols []pageCol
	for _, code := range labels.RoleCodes() {
		cols = append(cols, pageCol{Code: code, Label: labels.Role(code)})
	}

	var rows []pageRow
	for _, band := range labels.AgeBandCodes() {
		row := pageRow{Label: labels.AgeBand(band)}
		for _, role := range labels.RoleCodes() {
			v, ok := byKey[types.CellKey{AgeBand: band, Role: role}]
			if !ok {
				row.Cells = append(row.Cells, pageCell{})
				continue
			}
			row.Cells = append(row.Cells, pageCell{
				Has:   true,
				Color: v.Color,
				Title: cellTitle(band, role, v),
				Text:  cellText(snap.Metric, v),
			})
		}
		rows = append(rows, row)
	}

	return gridTmpl.Execute(w, pageData{
		Metric:      snap.Metric,
		Description: snap.MetricDescription,
		DomainLabel: formatValue(snap.Metric, snap.DomainMax),
		RampLow:     template.CSS(scale.RampLow()),
		RampHigh:    template.CSS(scale.RampHigh()),
		Metrics:     mets,
		Cols:        cols,
		Rows:        rows,
	})
}

func cellTitle(band, role int, v types.CellView) string {
	return fmt.Sprintf("%s / %s: %d casualties, %d killed or seriously injured (%.1f%%)",
		labels.AgeBand(band), labels.Role(role), v.Total, v.FlaggedCount, v.FlaggedRate*100)
}

func cellText(metricName string, v types.CellView) string {
	return formatValue(metricName, v.Value)
}

func formatValue(metricName string, v float64) string {
	if metricName == metric.Rate {
		return fmt.Sprintf("%.0f%%", v*100)
	}
	return fmt.Sprintf("%.0f", v)
}
