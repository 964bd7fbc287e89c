package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

func regionField() *core.FieldDescriptor {
	return &core.FieldDescriptor{Name: "Region", Kind: core.FieldDimension}
}

func detectedSet() []core.FieldMapping {
	return []core.FieldMapping{
		{
			Placeholder:    "{{Region}}",
			FieldName:      "Region",
			Confidence:     100,
			Source:         core.SourceUser,
			SuggestedField: regionField(),
		},
		{
			Placeholder: "{{Notes}}",
			FieldName:   "Notes",
			Confidence:  0,
			Source:      core.SourceUser,
		},
		{
			Placeholder:    "{{Cust}}",
			FieldName:      "Cust",
			Confidence:     60,
			Source:         core.SourceSystem,
			SuggestedField: &core.FieldDescriptor{Name: "Customer", Kind: core.FieldDimension},
		},
	}
}

func TestMergeAutoMapsHighConfidence(t *testing.T) {
	merged := Merge(detectedSet(), nil)
	require.Len(t, merged, 3)

	assert.Equal(t, "Region", merged[0].MappedField, "confidence 100 auto-maps")
	assert.Empty(t, merged[1].MappedField)
	assert.Empty(t, merged[2].MappedField, "confidence 60 is below threshold")
}

func TestMergePersistedChoiceWins(t *testing.T) {
	persisted := []core.FieldMapping{
		{Placeholder: "{{Region}}", MappedField: "Sales Region"},
		{Placeholder: "{{Notes}}", KeepAsText: true},
		{Placeholder: "{{Gone}}", MappedField: "Dropped"},
	}

	merged := Merge(detectedSet(), persisted)
	require.Len(t, merged, 3, "persisted entries without a detection are dropped")

	assert.Equal(t, "Sales Region", merged[0].MappedField,
		"explicit prior choice beats the suggestion")
	assert.True(t, merged[1].KeepAsText)
	assert.Empty(t, merged[2].MappedField)
}

func TestMergeIdempotent(t *testing.T) {
	once := Merge(detectedSet(), nil)
	twice := Merge(once, once)
	assert.Equal(t, once, twice)
}

func TestMergeDeduplicatesDetections(t *testing.T) {
	detected := []core.FieldMapping{
		{Placeholder: "{{Region}}", FieldName: "Region", Confidence: 100, SuggestedField: regionField()},
		{Placeholder: "{{Region}}", FieldName: "Region", Confidence: 100, SuggestedField: regionField()},
	}

	merged := Merge(detected, nil)
	assert.Len(t, merged, 1)
}

func TestMergeRoundTrip(t *testing.T) {
	// Persisting merged mappings and re-merging against the same
	// detections reproduces the same mapped fields.
	first := Merge(detectedSet(), nil)
	second := Merge(detectedSet(), first)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].MappedField, second[i].MappedField)
	}
}

func TestStoreOperations(t *testing.T) {
	s := NewStore(nil)
	s.Reconcile(detectedSet(), nil)

	require.True(t, s.SetMapping("{{Notes}}", "Comments"))
	m, ok := s.Get("{{Notes}}")
	require.True(t, ok)
	assert.Equal(t, "Comments", m.MappedField)

	require.True(t, s.MarkKeepAsText("{{Notes}}"))
	m, _ = s.Get("{{Notes}}")
	assert.True(t, m.KeepAsText)
	assert.Empty(t, m.MappedField, "keep-as-text drops the field resolution")

	require.True(t, s.SetMapping("{{Notes}}", "Comments"))
	m, _ = s.Get("{{Notes}}")
	assert.False(t, m.KeepAsText, "mapping clears keep-as-text")

	require.True(t, s.ClearMapping("{{Notes}}"))
	m, _ = s.Get("{{Notes}}")
	assert.False(t, m.Resolved())

	assert.False(t, s.SetMapping("{{Missing}}", "X"))
	assert.False(t, s.ClearMapping("{{Missing}}"))
	assert.False(t, s.MarkKeepAsText("{{Missing}}"))
}

func TestStoreAutoMapHighConfidence(t *testing.T) {
	detected := detectedSet()
	// Suppress merge-time auto-mapping by reconciling entries that are
	// already resolved, then clearing one.
	s := NewStore(nil)
	s.Reconcile(detected, nil)
	require.True(t, s.ClearMapping("{{Region}}"))

	mapped := s.AutoMapHighConfidence()
	assert.Equal(t, 1, mapped)

	m, _ := s.Get("{{Region}}")
	assert.Equal(t, "Region", m.MappedField)

	assert.Equal(t, 0, s.AutoMapHighConfidence(), "second pass is a no-op")
}

func TestStoreSetThreshold(t *testing.T) {
	s := NewStore(nil)
	s.SetThreshold(60)
	s.Reconcile(detectedSet(), nil)

	m, _ := s.Get("{{Cust}}")
	assert.Equal(t, "Customer", m.MappedField, "lowered threshold auto-maps confidence 60")

	s.SetThreshold(0)
	s.Reconcile(detectedSet(), nil)
	m, _ = s.Get("{{Cust}}")
	assert.Equal(t, "Customer", m.MappedField, "non-positive threshold is ignored")
}

func TestStats(t *testing.T) {
	s := NewStore(nil)
	s.Reconcile(detectedSet(), nil)
	s.MarkKeepAsText("{{Notes}}")

	stats := s.Stats()
	assert.Equal(t, Stats{Total: 3, Mapped: 1, KeptAsText: 1, Unresolved: 1}, stats)
	assert.Equal(t, 2, stats.Resolved())
	assert.False(t, stats.Complete())
}

func TestSummary(t *testing.T) {
	s := NewStore(nil)
	s.Reconcile(detectedSet(), nil)
	s.MarkKeepAsText("{{Notes}}")

	rows := s.Summary()
	require.Len(t, rows, 3)

	assert.Equal(t, StatusMapped, rows[0].Status)
	assert.Equal(t, "Region", rows[0].MappedField)

	assert.Equal(t, StatusKeptAsText, rows[1].Status)

	assert.Equal(t, StatusSuggested, rows[2].Status)
	assert.Equal(t, "Customer", rows[2].SuggestedField)
	assert.Equal(t, core.SourceSystem, rows[2].Source)
}
