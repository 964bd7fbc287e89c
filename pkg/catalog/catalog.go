// Package catalog projects the fields of a DataTable snapshot into the
// flat field lists consumed by the matcher and renderer.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// refreshTimeout bounds a forced snapshot refresh.
const refreshTimeout = 5 * time.Second

// Catalog is the set of fields available for placeholder resolution.
// Source order is preserved: dimensions first, then measures.
type Catalog struct {
	Dimensions []core.FieldDescriptor `json:"dimensions"`
	Measures   []core.FieldDescriptor `json:"measures"`
}

// FromTable projects a table's column descriptors into a Catalog.
// Pure projection, no side effects; kinds are normalized so downstream
// code can rely on them even when the source left Kind empty.
func FromTable(t *core.DataTable) Catalog {
	if t == nil {
		return Catalog{}
	}

	c := Catalog{
		Dimensions: make([]core.FieldDescriptor, 0, len(t.Dimensions)),
		Measures:   make([]core.FieldDescriptor, 0, len(t.Measures)),
	}
	for _, d := range t.Dimensions {
		d.Kind = core.FieldDimension
		c.Dimensions = append(c.Dimensions, d)
	}
	for _, m := range t.Measures {
		m.Kind = core.FieldMeasure
		c.Measures = append(c.Measures, m)
	}
	return c
}

// All returns every field in catalog order: dimensions before measures.
func (c Catalog) All() []core.FieldDescriptor {
	all := make([]core.FieldDescriptor, 0, len(c.Dimensions)+len(c.Measures))
	all = append(all, c.Dimensions...)
	all = append(all, c.Measures...)
	return all
}

// Len returns the total field count.
func (c Catalog) Len() int {
	return len(c.Dimensions) + len(c.Measures)
}

// Refresher wraps a SnapshotProvider and keeps the projected catalog in
// step with the current table snapshot. Refresh replaces the snapshot
// wholesale; readers always see a consistent table/catalog pair.
type Refresher struct {
	provider core.SnapshotProvider
	logger   *slog.Logger
}

// NewRefresher creates a Refresher over the given provider.
func NewRefresher(provider core.SnapshotProvider, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{provider: provider, logger: logger}
}

// Snapshot returns the cached table and its catalog projection.
func (r *Refresher) Snapshot() (*core.DataTable, Catalog) {
	t := r.provider.Current()
	return t, FromTable(t)
}

// Refresh forces a new snapshot from the provider, bounded by the
// refresh timeout, and returns the refreshed table with its catalog.
func (r *Refresher) Refresh(ctx context.Context) (*core.DataTable, Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	t, err := r.provider.Refresh(ctx)
	if err != nil {
		return nil, Catalog{}, fmt.Errorf("failed to refresh data snapshot: %w", err)
	}

	c := FromTable(t)
	r.logger.Debug("data snapshot refreshed",
		slog.Int("rows", len(t.Rows)),
		slog.Int("fields", c.Len()))
	return t, c, nil
}
