package pofill

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// rowFilter decides whether a data row is indexed. It wraps a compiled
// expr-lang program evaluated against the row's fields.
//
// Available variables:
//
//	key    string             stripped key field
//	row    int                1-based sheet row number (header rows included)
//	fields map[string]string  row-1 column name -> stripped value
//	names  map[string]string  row-2 column name -> stripped value
//
// Example: `key != "0" && fields["IsUntradable"] != "True"`.
type rowFilter struct {
	source  string
	program *vm.Program
}

// filterEnv is the compile-time shape of the evaluation environment.
func filterEnv() map[string]any {
	return map[string]any{
		"key":    "",
		"row":    0,
		"fields": map[string]string{},
		"names":  map[string]string{},
	}
}

// newRowFilter compiles expression. An empty expression yields a nil filter,
// which accepts every row.
func newRowFilter(expression string) (*rowFilter, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.Env(filterEnv()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile row filter %q: %w", expression, err)
	}
	return &rowFilter{source: expression, program: program}, nil
}

// Accept evaluates the filter for one data row.
func (f *rowFilter) Accept(key string, sheetRow int, h header, row []string) (bool, error) {
	if f == nil {
		return true, nil
	}
	env := map[string]any{
		"key":    key,
		"row":    sheetRow,
		"fields": rowFields(h.keys, row),
		"names":  rowFields(h.names, row),
	}
	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate row filter %q at row %d: %w", f.source, sheetRow, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("row filter %q evaluated to %T, expected bool", f.source, result)
	}
	return ok, nil
}

// rowFields pairs header names with the stripped values of row. Empty header
// cells are skipped; when a name repeats, the rightmost column wins.
func rowFields(names, row []string) map[string]string {
	m := make(map[string]string, len(names))
	for i, name := range names {
		if name == "" || i >= len(row) {
			continue
		}
		m[name] = stripQuotes(row[i])
	}
	return m
}
