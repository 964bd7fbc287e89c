package mapping

import (
	"github.com/leapstack-labs/promptfield/pkg/core"
	"github.com/leapstack-labs/promptfield/pkg/matcher"
)

// Merge reconciles freshly detected mappings with persisted ones.
//
// The result has exactly one entry per distinct detected placeholder, in
// detection order. A persisted entry with the same literal token and a
// non-empty mapped field wins over any suggestion (explicit prior user
// choice), as does a persisted keep-as-text marker. Entries still
// unmapped afterwards are auto-mapped when their matcher confidence
// meets the threshold. Merge is idempotent: merging an already-merged
// list with itself yields the same list.
func Merge(detected, persisted []core.FieldMapping) []core.FieldMapping {
	return mergeWithThreshold(detected, persisted, matcher.AutoMapThreshold)
}

func mergeWithThreshold(detected, persisted []core.FieldMapping, threshold int) []core.FieldMapping {
	saved := make(map[string]core.FieldMapping, len(persisted))
	for _, p := range persisted {
		if _, ok := saved[p.Placeholder]; !ok {
			saved[p.Placeholder] = p
		}
	}

	seen := make(map[string]struct{}, len(detected))
	merged := make([]core.FieldMapping, 0, len(detected))

	for _, d := range detected {
		if _, ok := seen[d.Placeholder]; ok {
			continue
		}
		seen[d.Placeholder] = struct{}{}

		entry := d
		if p, ok := saved[entry.Placeholder]; ok {
			if p.MappedField != "" {
				entry.MappedField = p.MappedField
				entry.KeepAsText = false
			} else if p.KeepAsText {
				entry.KeepAsText = true
			}
		}

		autoMap(&entry, threshold)
		merged = append(merged, entry)
	}
	return merged
}
