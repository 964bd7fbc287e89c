package evaluator

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/promptfield/pkg/core"
)

// builtins returns the predeclared globals for expression evaluation.
// The count functions resolve against the table snapshot: with no live
// selection state available, the distinct non-empty values of a
// dimension column stand in for both the selected and the possible set.
func builtins(table *core.DataTable) starlark.StringDict {
	return starlark.StringDict{
		"GetSelectedCount": starlark.NewBuiltin("GetSelectedCount", countBuiltin(table)),
		"GetPossibleCount": starlark.NewBuiltin("GetPossibleCount", countBuiltin(table)),
	}
}

func countBuiltin(table *core.DataTable) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var name string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
			return nil, err
		}
		name = strings.Trim(strings.TrimSpace(name), `[]`)

		if table == nil {
			return nil, fmt.Errorf("%s: no data table available", b.Name())
		}
		col, ok := table.DimensionIndex(name)
		if !ok {
			return nil, fmt.Errorf("%s: field %q is not a dimension of the data table", b.Name(), name)
		}
		return starlark.MakeInt(len(table.DistinctDimensionValues(col))), nil
	}
}
