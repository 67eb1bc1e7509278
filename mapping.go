package pofill

import (
	"errors"
	"fmt"
	"io"
)

// Mode selects how LoadMapping builds its index.
type Mode int

const (
	// ModeName maps normalized display names to identifiers. Every requested
	// value column contributes entries.
	ModeName Mode = iota
	// ModeID maps identifiers to the display name in the first requested value column.
	ModeID
)

func (m Mode) String() string {
	switch m {
	case ModeName:
		return "name"
	case ModeID:
		return "id"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Mapping is an in-memory index built from one tabular source.
//
// Collision policy: entries are written in sheet order, value columns left to
// right, and a later write replaces an earlier one for the same key. Register
// a CollisionListener to observe replacements.
type Mapping map[string]string

var (
	// ErrColumnNotFound is returned when a requested column name is absent
	// from its header row.
	ErrColumnNotFound = errors.New("column not found")
	// ErrMissingHeader is returned when a source ends before its three header rows.
	ErrMissingHeader = errors.New("missing header rows")
	// ErrNoValueColumns is returned when LoadMapping is called without value columns.
	ErrNoValueColumns = errors.New("no value columns requested")
)

// CollisionListener is notified when an index entry is overwritten with a
// different value. row is the 1-based sheet row of the new value.
type CollisionListener interface {
	Collision(key, previous, current string, row int)
}

// CollisionFunc adapts a function to CollisionListener.
type CollisionFunc func(key, previous, current string, row int)

// Collision calls f.
func (f CollisionFunc) Collision(key, previous, current string, row int) {
	f(key, previous, current, row)
}

// LoadMapping reads the tabular source at path and builds a Mapping.
//
// keyColumn is looked up in the first header row, valueColumns in the second.
// The third header row is ignored. Data rows shorter than the highest
// referenced column are skipped, as are rows whose key is empty after
// stripping one layer of surrounding double quotes.
func LoadMapping(path, keyColumn string, valueColumns []string, mode Mode, opts ...Option) (Mapping, error) {
	if mode != ModeName && mode != ModeID {
		return nil, fmt.Errorf("load mapping %q: unsupported mode %s", path, mode)
	}
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("load mapping %q: %w", path, ErrNoValueColumns)
	}
	o := applyOptions(opts)

	filter, err := newRowFilter(o.rowFilter)
	if err != nil {
		return nil, err
	}

	rr, err := openRows(path, o.sheet)
	if err != nil {
		return nil, err
	}
	defer rr.Close()

	h, err := readHeader(rr, path)
	if err != nil {
		return nil, err
	}

	keyIdx := columnIndex(h.keys, keyColumn)
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: key column %q not in first header row of %q", ErrColumnNotFound, keyColumn, path)
	}
	valIdx := make([]int, len(valueColumns))
	for i, name := range valueColumns {
		idx := columnIndex(h.names, name)
		if idx < 0 {
			return nil, fmt.Errorf("%w: value column %q not in second header row of %q", ErrColumnNotFound, name, path)
		}
		valIdx[i] = idx
	}
	if mode == ModeID {
		valIdx = valIdx[:1]
	}

	maxIdx := keyIdx
	for _, idx := range valIdx {
		maxIdx = max(maxIdx, idx)
	}

	m := make(Mapping)
	set := func(k, v string, row int) {
		if prev, ok := m[k]; ok && prev != v && o.collisionListener != nil {
			o.collisionListener.Collision(k, prev, v, row)
		}
		m[k] = v
	}

	for sheetRow := headerRows + 1; ; sheetRow++ {
		row, err := rr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) <= maxIdx {
			continue
		}
		key := stripQuotes(row[keyIdx])
		if key == "" {
			continue
		}
		ok, err := filter.Accept(key, sheetRow, h, row)
		if err != nil {
			return nil, fmt.Errorf("load mapping %q: %w", path, err)
		}
		if !ok {
			continue
		}

		switch mode {
		case ModeName:
			for _, idx := range valIdx {
				value := stripQuotes(row[idx])
				if value == "" {
					continue
				}
				// A name made only of markup or punctuation would match every
				// msgid that normalizes to "", so it is not indexed.
				if k := o.normalizer(value); k != "" {
					set(k, key, sheetRow)
				}
			}
		case ModeID:
			if value := stripQuotes(row[valIdx[0]]); value != "" {
				set(key, value, sheetRow)
			}
		}
	}
	return m, nil
}
