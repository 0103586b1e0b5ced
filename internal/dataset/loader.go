package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ufabox/InfoViz-25W-A3/internal/logger"
	"github.com/ufabox/InfoViz-25W-A3/internal/types"
)

// Load reads the casualty table from a local path or an http(s) URL.
// XLSX and CSV sources produce the same record sequence. Rows that cannot
// be coerced to the three integer codes are skipped quietly; a source that
// cannot be opened at all is a hard error.
func Load(path string) ([]types.CasualtyRecord, error) {
	log := logger.New().WithComponent("dataset").WithField("path", path)

	local := path
	if isRemote(path) {
		tmp, cleanup, err := fetch(path)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		defer cleanup()
		local = tmp
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(local)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(local)
	default:
		rows, err = readCSV(local)
	}
	if err != nil {
		return nil, err
	}
	// A readable but empty source is a successful empty load, not a failure.
	if len(rows) == 0 {
		log.Info("source is empty")
		return nil, nil
	}

	ageIdx, roleIdx, sevIdx, hasHeader := detectColumns(rows[0])
	log.WithFields(map[string]interface{}{
		"age_col":      ageIdx,
		"role_col":     roleIdx,
		"severity_col": sevIdx,
		"has_header":   hasHeader,
	}).Info("detected dataset columns")

	start := 0
	if hasHeader {
		start = 1
	}
	var out []types.CasualtyRecord
	skipped := 0
	for _, r := range rows[start:] {
		rec, ok := parseRow(r, ageIdx, roleIdx, sevIdx)
		if !ok {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	log.WithField("records", len(out)).WithField("skipped_rows", skipped).Info("dataset loaded")
	return out, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// detectColumns finds the age band, role and severity columns by header
// name heuristics, falling back to the first three columns when the first
// row is not a header.
func detectColumns(first []string) (ageIdx, roleIdx, sevIdx int, hasHeader bool) {
	ageIdx, roleIdx, sevIdx = -1, -1, -1
	for i, h := range first {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "age"):
			if ageIdx == -1 {
				ageIdx = i
			}
		case strings.Contains(l, "class") || strings.Contains(l, "role"):
			if roleIdx == -1 {
				roleIdx = i
			}
		case strings.Contains(l, "severity"):
			if sevIdx == -1 {
				sevIdx = i
			}
		}
	}
	if ageIdx >= 0 || roleIdx >= 0 || sevIdx >= 0 {
		hasHeader = true
	}
	// A fully numeric first row means there is no header at all.
	if ageIdx == -1 {
		ageIdx = 0
	}
	if roleIdx == -1 {
		roleIdx = 1
	}
	if sevIdx == -1 {
		sevIdx = 2
	}
	if !hasHeader {
		// Only treat the row as data if every needed field coerces.
		if _, ok := parseRow(first, ageIdx, roleIdx, sevIdx); !ok {
			hasHeader = true
		}
	}
	return ageIdx, roleIdx, sevIdx, hasHeader
}

func parseRow(r []string, ageIdx, roleIdx, sevIdx int) (types.CasualtyRecord, bool) {
	age, ok := intAt(r, ageIdx)
	if !ok {
		return types.CasualtyRecord{}, false
	}
	role, ok := intAt(r, roleIdx)
	if !ok {
		return types.CasualtyRecord{}, false
	}
	sev, ok := intAt(r, sevIdx)
	if !ok {
		return types.CasualtyRecord{}, false
	}
	return types.CasualtyRecord{AgeBand: age, Role: role, Severity: sev}, true
}

func intAt(r []string, idx int) (int, bool) {
	if idx < 0 || idx >= len(r) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(r[idx]))
	if err != nil {
		return 0, false
	}
	return v, true
}
