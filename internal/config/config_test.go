package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajack/pofill"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pofill.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "csv", cfg.CSVDir)
	assert.Equal(t, Columns{Key: "key", Values: []string{"Singular"}}, cfg.Source)
	assert.Equal(t, Columns{Key: "key", Values: []string{"Name"}}, cfg.Target)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
csv_dir = "sheets"
normalize = "markup"
where = 'key != "0"'

[source]
key = "key"
values = ["Singular", "Plural"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sheets", cfg.CSVDir)
	assert.Equal(t, pofill.PolicyMarkup, cfg.Normalize)
	assert.Equal(t, `key != "0"`, cfg.Where)
	assert.Equal(t, []string{"Singular", "Plural"}, cfg.Source.Values)
	// Untouched sections keep their defaults.
	assert.Equal(t, []string{"Name"}, cfg.Target.Values)
	assert.Equal(t, "pofill.log", cfg.LogFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `csv_dir = "sheets"`)
	t.Setenv("POFILL_CSV_DIR", "from-env")
	t.Setenv("POFILL_LOG_FILE", "env.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.CSVDir)
	assert.Equal(t, "env.log", cfg.LogFile)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad toml", func(t *testing.T) {
		_, err := Load(writeConfig(t, `csv_dir = `))
		require.Error(t, err)
	})

	t.Run("unknown normalizer", func(t *testing.T) {
		_, err := Load(writeConfig(t, `normalize = "fuzzy"`))
		require.ErrorIs(t, err, pofill.ErrUnknownNormalizer)
	})

	t.Run("empty value columns", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[target]\nvalues = []\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "target.values")
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[source]\nkey = \"\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source.key")
	})
}
