package pofill

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testdataDir returns the path to testdata directory, creating it if needed.
func testdataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("testdata")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// writeFile writes content to testdata/name and removes it when the test ends.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(testdataDir(t), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Cleanup(func() { os.Remove(path) })
	return path
}

// writeCSV writes raw CSV lines to testdata/name.
func writeCSV(t *testing.T, name string, lines ...string) string {
	t.Helper()
	return writeFile(t, name, strings.Join(lines, "\n")+"\n")
}

// itemHeader is the three-row header used by the item sheets:
//
//	key, 0,        1
//	#,   Singular, Name
//	int32, str,    str
var itemHeader = []string{
	"key,0,1",
	"#,Singular,Name",
	"int32,str,str",
}

// createItemSheet writes an item sheet with itemHeader followed by rows.
func createItemSheet(t *testing.T, name string, rows ...string) string {
	t.Helper()
	return writeCSV(t, name, append(append([]string{}, itemHeader...), rows...)...)
}

// createItemWorkbook writes rows (header rows included) to Sheet1 of testdata/name.
func createItemWorkbook(t *testing.T, name string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for r, row := range rows {
		for c, v := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, v))
		}
	}

	path := filepath.Join(testdataDir(t), name)
	require.NoError(t, f.SaveAs(path))
	t.Cleanup(func() { os.Remove(path) })
	return path
}
