package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/promptfield/pkg/catalog"
	"github.com/leapstack-labs/promptfield/pkg/core"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Dimensions: []core.FieldDescriptor{
			{Name: "Region", Kind: core.FieldDimension},
			{Name: "Customer Name", Kind: core.FieldDimension},
			{Name: "Product Category", Kind: core.FieldDimension},
		},
		Measures: []core.FieldDescriptor{
			{Name: "Sales Amount", Kind: core.FieldMeasure},
			{Name: "Region Rank", Kind: core.FieldMeasure},
		},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name        string
		placeholder string
		field       string
		want        int
	}{
		{"exact", "Region", "Region", ConfidenceExact},
		{"exact case-insensitive", "region", "REGION", ConfidenceExact},
		{"catalog contains placeholder", "Customer", "Customer Name", ConfidenceContains},
		{"placeholder contains first token", "total sales figure", "sales amount", ConfidenceToken},
		{"no match", "Foo", "Bar", ConfidenceNone},
		{"empty placeholder", "", "Region", ConfidenceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.placeholder, core.FieldDescriptor{Name: tt.field})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchTierMonotonicity(t *testing.T) {
	// An exact-name entry outranks a contains-match even when the
	// contains-match comes first in catalog order.
	c := catalog.Catalog{
		Dimensions: []core.FieldDescriptor{
			{Name: "Region Group", Kind: core.FieldDimension},
			{Name: "Region", Kind: core.FieldDimension},
		},
	}

	field, confidence := Match("Region", c)
	require.NotNil(t, field)
	assert.Equal(t, "Region", field.Name)
	assert.Equal(t, ConfidenceExact, confidence)
}

func TestMatchTiesResolveInCatalogOrder(t *testing.T) {
	// "Region" (dimension) and "Region Rank" (measure) both contain
	// "regio"; the dimension comes first and must win.
	field, confidence := Match("regio", testCatalog())
	require.NotNil(t, field)
	assert.Equal(t, "Region", field.Name)
	assert.Equal(t, ConfidenceContains, confidence)
}

func TestMatchNoCandidate(t *testing.T) {
	field, confidence := Match("Zebra", testCatalog())
	assert.Nil(t, field)
	assert.Equal(t, ConfidenceNone, confidence)
}

func TestMatchDuplicateFieldNamesFirstWins(t *testing.T) {
	c := catalog.Catalog{
		Dimensions: []core.FieldDescriptor{
			{Name: "Region", Kind: core.FieldDimension, Expression: "[Region1]"},
			{Name: "Region", Kind: core.FieldDimension, Expression: "[Region2]"},
		},
	}

	field, _ := Match("Region", c)
	require.NotNil(t, field)
	assert.Equal(t, "[Region1]", field.Expression)
}

func TestSuggest(t *testing.T) {
	placeholders := []core.Placeholder{
		{Raw: "{{Region}}", FieldName: "Region", Source: core.SourceUser},
		{Raw: "{{Region}}", FieldName: "Region", Source: core.SourceUser},
		{Raw: "{{Unknown}}", FieldName: "Unknown", Source: core.SourceSystem},
	}

	mappings := Suggest(placeholders, testCatalog())
	require.Len(t, mappings, 2, "duplicate tokens collapse to one mapping")

	region := mappings[0]
	assert.Equal(t, "{{Region}}", region.Placeholder)
	assert.Equal(t, ConfidenceExact, region.Confidence)
	require.NotNil(t, region.SuggestedField)
	assert.Equal(t, "Region", region.SuggestedField.Name)
	assert.False(t, region.Mapped(), "suggest does not apply mappings")

	unknown := mappings[1]
	assert.Equal(t, ConfidenceNone, unknown.Confidence)
	assert.Nil(t, unknown.SuggestedField)
	assert.Equal(t, core.SourceSystem, unknown.Source)
}

func TestSuggestEmpty(t *testing.T) {
	assert.Nil(t, Suggest(nil, testCatalog()))
}
