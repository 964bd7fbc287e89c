package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single table cell. A cell carries a display text and/or a
// numeric value; IsNum reports whether Num holds a real number.
type Cell struct {
	// Text is the display text ("" when absent)
	Text string `json:"text"`
	// Num is the numeric value, meaningful only when IsNum is true
	Num float64 `json:"num"`
	// IsNum reports whether the cell carries a numeric value
	IsNum bool `json:"isNum"`
}

// Number returns the numeric content of the cell. Non-numeric cells fall
// back to parsing the display text, then to 0.
func (c Cell) Number() float64 {
	if c.IsNum {
		return c.Num
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64); err == nil {
		return v
	}
	return 0
}

// DataTable is an immutable snapshot of the widget's tabular data.
// Columns are ordered dimensions-first: row cells [0..len(Dimensions))
// align with Dimensions, the rest with Measures.
type DataTable struct {
	Dimensions []FieldDescriptor `json:"dimensions"`
	Measures   []FieldDescriptor `json:"measures"`
	Rows       [][]Cell          `json:"rows"`
}

// ColumnCount returns the expected cell count per row.
func (t *DataTable) ColumnCount() int {
	return len(t.Dimensions) + len(t.Measures)
}

// Validate checks the row-shape invariant: every row has exactly
// dimension count + measure count cells.
func (t *DataTable) Validate() error {
	want := t.ColumnCount()
	for i, row := range t.Rows {
		if len(row) != want {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), want)
		}
	}
	return nil
}

// DimensionIndex returns the column index of the named dimension,
// matched case-insensitively. The first match wins; duplicate names are
// tolerated.
func (t *DataTable) DimensionIndex(name string) (int, bool) {
	for i, d := range t.Dimensions {
		if strings.EqualFold(d.Name, name) {
			return i, true
		}
	}
	return 0, false
}

// MeasureIndex returns the column index (offset past the dimensions) of
// the named measure, matched case-insensitively. The first match wins.
func (t *DataTable) MeasureIndex(name string) (int, bool) {
	for i, m := range t.Measures {
		if strings.EqualFold(m.Name, name) {
			return len(t.Dimensions) + i, true
		}
	}
	return 0, false
}

// DistinctDimensionValues collects the distinct non-empty display values
// in the given column, in order of first appearance.
func (t *DataTable) DistinctDimensionValues(col int) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		v := row[col].Text
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// MeasureValues collects the numeric content of every row in the given
// column. Non-numeric cells contribute 0.
func (t *DataTable) MeasureValues(col int) []float64 {
	var values []float64
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		values = append(values, row[col].Number())
	}
	return values
}

// SnapshotProvider supplies DataTable snapshots. Current must be cheap
// and synchronous (a cached snapshot); Refresh may reach out to the data
// source and is expected to honor ctx cancellation.
type SnapshotProvider interface {
	Current() *DataTable
	Refresh(ctx context.Context) (*DataTable, error)
}
