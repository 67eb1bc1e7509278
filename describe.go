package pofill

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Describe reads a tabular source and returns a human-readable summary of its
// header rows and data rows. Useful for picking column names for LoadMapping.
func Describe(path string, opts ...Option) (string, error) {
	o := applyOptions(opts)

	rr, err := openRows(path, o.sheet)
	if err != nil {
		return "", err
	}
	defer rr.Close()

	h, err := readHeader(rr, path)
	if err != nil {
		return "", err
	}

	width := max(len(h.keys), len(h.names))
	var data, short int
	for {
		row, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		data++
		if len(row) < width {
			short++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Source: %s\n", path)
	fmt.Fprintf(&b, "Columns (%d):\n", width)
	keyWidth := 3
	for _, k := range h.keys {
		keyWidth = max(keyWidth, len(k))
	}
	fmt.Fprintf(&b, "  %-4s %-*s  %s\n", "COL", keyWidth, "KEY", "NAME")
	for i := 0; i < width; i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("describe %q: %w", path, err)
		}
		fmt.Fprintf(&b, "  %-4s %-*s  %s\n", col, keyWidth, cell(h.keys, i), cell(h.names, i))
	}
	fmt.Fprintf(&b, "Data rows: %d", data)
	if short > 0 {
		fmt.Fprintf(&b, " (%d shorter than the header)", short)
	}
	b.WriteByte('\n')
	return b.String(), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
