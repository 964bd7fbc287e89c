// Package tabular loads DataTable snapshots from CSV and JSON files so
// the CLI and tests can run against real tables.
package tabular

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// LoadCSV reads a table from a CSV file. The header row names the
// fields; the first dimensionCount columns become dimensions, the rest
// measures. Cells that parse as numbers carry a numeric value alongside
// their display text.
func LoadCSV(path string, dimensionCount int) (*core.DataTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table file %s has no header row", path)
	}

	header := records[0]
	if dimensionCount < 0 || dimensionCount > len(header) {
		return nil, fmt.Errorf("dimension count %d out of range for %d columns", dimensionCount, len(header))
	}

	table := &core.DataTable{}
	for i, name := range header {
		fd := core.FieldDescriptor{Name: strings.TrimSpace(name)}
		if i < dimensionCount {
			fd.Kind = core.FieldDimension
			table.Dimensions = append(table.Dimensions, fd)
		} else {
			fd.Kind = core.FieldMeasure
			table.Measures = append(table.Measures, fd)
		}
	}

	for _, record := range records[1:] {
		row := make([]core.Cell, len(record))
		for i, raw := range record {
			row[i] = cellFromText(raw)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("malformed table in %s: %w", path, err)
	}
	return table, nil
}

// LoadJSON reads a DataTable directly from its JSON form.
func LoadJSON(path string) (*core.DataTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table file: %w", err)
	}

	var table core.DataTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse JSON table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("malformed table in %s: %w", path, err)
	}
	return &table, nil
}

// Load picks the loader from the file extension (.json, else CSV).
func Load(path string, dimensionCount int) (*core.DataTable, error) {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return LoadJSON(path)
	}
	return LoadCSV(path, dimensionCount)
}

func cellFromText(raw string) core.Cell {
	text := strings.TrimSpace(raw)
	cell := core.Cell{Text: text}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		cell.Num = v
		cell.IsNum = true
	}
	return cell
}

// StaticProvider serves a fixed snapshot; Refresh re-serves the same
// table. Used by the CLI, the HTTP surface, and tests.
type StaticProvider struct {
	table *core.DataTable
}

// NewStaticProvider wraps a table as a SnapshotProvider.
func NewStaticProvider(table *core.DataTable) *StaticProvider {
	return &StaticProvider{table: table}
}

// Current returns the wrapped table.
func (p *StaticProvider) Current() *core.DataTable { return p.table }

// Refresh re-serves the wrapped table.
func (p *StaticProvider) Refresh(_ context.Context) (*core.DataTable, error) {
	return p.table, nil
}
