package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// languages are the sheet languages pofill can translate between, keyed by
// the suffix used in sheet file names (Item_EN.csv, Item_JP.csv, ...).
var languages = map[string]language.Tag{
	"en": language.English,
	"jp": language.Japanese,
	"de": language.German,
	"fr": language.French,
}

func languageCodes() string {
	codes := make([]string, 0, len(languages))
	for c := range languages {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}

func parseLanguage(flag, value string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(value))
	if _, ok := languages[code]; !ok {
		return "", usageErrorf("argument --%s: invalid choice %q (choose from %s)", flag, value, languageCodes())
	}
	return code, nil
}

// languageName returns the English display name, e.g. "German" for "de".
func languageName(code string) string {
	tag, ok := languages[code]
	if !ok {
		return strings.ToUpper(code)
	}
	return display.English.Tags().Name(tag)
}

// sheetPath locates Item_<LANG>.csv in dir, falling back to Item_<LANG>.xlsx
// when only the workbook exists.
func sheetPath(dir, code string) string {
	base := filepath.Join(dir, "Item_"+strings.ToUpper(code))
	csvPath := base + ".csv"
	if _, err := os.Stat(csvPath); errors.Is(err, os.ErrNotExist) {
		if _, err := os.Stat(base + ".xlsx"); err == nil {
			return base + ".xlsx"
		}
	}
	return csvPath
}

// defaultOutput inserts ".<lang>" before the extension of input:
// messages.po becomes messages.de.po.
func defaultOutput(input, code string) string {
	ext := filepath.Ext(input)
	if ext == "" || ext == filepath.Base(input) {
		return input + "." + code
	}
	return strings.TrimSuffix(input, ext) + "." + code + ext
}

func direction(src, tgt string) string {
	return fmt.Sprintf("%s→%s (%s→%s)",
		strings.ToUpper(src), strings.ToUpper(tgt), languageName(src), languageName(tgt))
}
