package pofill

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// headerRows is the number of rows before the first data row: key column
// names, display column names and an unused metadata row.
const headerRows = 3

// rowReader yields the rows of a tabular source one at a time. Next returns
// io.EOF after the last row.
type rowReader interface {
	Next() ([]string, error)
	Close() error
}

// openRows opens path as CSV, or as a workbook when the extension is .xlsx/.xlsm.
func openRows(path, sheet string) (rowReader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return openXLSX(path, sheet)
	default:
		return openCSV(path)
	}
}

type csvSource struct {
	file   *os.File
	reader *csv.Reader
}

func openCSV(path string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet %q: %w", path, err)
	}
	// BOMOverride drops a leading UTF-8 byte-order mark and passes the rest through.
	dec := xunicode.BOMOverride(xunicode.UTF8.NewDecoder())
	r := csv.NewReader(transform.NewReader(f, dec))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return &csvSource{file: f, reader: r}, nil
}

func (s *csvSource) Next() ([]string, error) {
	row, err := s.reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %q: %w", s.file.Name(), err)
	}
	return row, err
}

func (s *csvSource) Close() error {
	return s.file.Close()
}

// xlsxSource reads one worksheet. excelize drops trailing empty cells, so
// data rows are padded to the widest header row to read like CSV records.
type xlsxSource struct {
	path  string
	file  *excelize.File
	rows  *excelize.Rows
	read  int
	width int
}

func openXLSX(path, sheet string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet %q: %w", path, err)
	}
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, fmt.Errorf("open sheet %q: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read rows from sheet %q of %q: %w", sheet, path, err)
	}
	return &xlsxSource{path: path, file: f, rows: rows}, nil
}

func (s *xlsxSource) Next() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("read %q: %w", s.path, err)
		}
		return nil, io.EOF
	}
	cols, err := s.rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", s.path, err)
	}
	s.read++
	if s.read <= headerRows {
		s.width = max(s.width, len(cols))
		return cols, nil
	}
	for len(cols) < s.width {
		cols = append(cols, "")
	}
	return cols, nil
}

func (s *xlsxSource) Close() error {
	s.rows.Close()
	return s.file.Close()
}

// header holds the three leading rows of a tabular source.
type header struct {
	keys  []string // row 1
	names []string // row 2
}

func readHeader(rr rowReader, path string) (header, error) {
	var rows [headerRows][]string
	for i := range rows {
		row, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return header{}, fmt.Errorf("%w: %q has %d of %d header rows", ErrMissingHeader, path, i, headerRows)
		}
		if err != nil {
			return header{}, err
		}
		rows[i] = row
	}
	return header{keys: rows[0], names: rows[1]}, nil
}

// stripQuotes removes one layer of surrounding double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func columnIndex(row []string, name string) int {
	for i, v := range row {
		if v == name {
			return i
		}
	}
	return -1
}
