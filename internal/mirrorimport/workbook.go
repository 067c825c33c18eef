// Package mirrorimport reads location mirror snapshots from spreadsheets.
//
// A workbook holds one sheet per mirror location, named after the location
// ("garage", "Showroom Floor 1", "inventory-floor-2", ...). The first row of
// each sheet is the header and names the record keys; every following
// non-empty row becomes one record.
package mirrorimport

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"dealerops/internal/domain"
)

// Snapshot is the parsed content of one workbook.
type Snapshot struct {
	Locations map[domain.MirrorLocation][]map[string]any
	// Skipped lists sheets whose names match no mirror location.
	Skipped []string
}

// LocationForSheet maps a sheet name to its mirror location.
func LocationForSheet(name string) (domain.MirrorLocation, bool) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	loc := domain.MirrorLocation(norm)
	return loc, loc.Valid()
}

// ReadWorkbook parses every location sheet of the xlsx document in r.
func ReadWorkbook(r io.Reader) (*Snapshot, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	snap := &Snapshot{Locations: make(map[domain.MirrorLocation][]map[string]any)}
	for _, sheet := range f.GetSheetList() {
		loc, ok := LocationForSheet(sheet)
		if !ok {
			snap.Skipped = append(snap.Skipped, sheet)
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		snap.Locations[loc] = append(snap.Locations[loc], rowsToRecords(rows)...)
	}
	return snap, nil
}

func rowsToRecords(rows [][]string) []map[string]any {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]map[string]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any)
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				rec[header[i]] = cell
			}
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}
