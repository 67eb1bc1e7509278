// Package config loads pofill settings: built-in defaults, then an optional
// .env file, then a TOML file, then POFILL_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/javajack/pofill"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "pofill.toml"

// Columns names the key column (first header row) and the value columns
// (second header row) read from a sheet.
type Columns struct {
	Key    string   `toml:"key"`
	Values []string `toml:"values"`
}

// Config holds the settings for one pofill run.
type Config struct {
	CSVDir    string  `toml:"csv_dir"`
	LogFile   string  `toml:"log_file"`
	Normalize string  `toml:"normalize"`
	Where     string  `toml:"where"`
	Sheet     string  `toml:"sheet"`
	Source    Columns `toml:"source"`
	Target    Columns `toml:"target"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		CSVDir:    "csv",
		LogFile:   "pofill.log",
		Normalize: pofill.PolicyStrict,
		Source:    Columns{Key: "key", Values: []string{"Singular"}},
		Target:    Columns{Key: "key", Values: []string{"Name"}},
	}
}

// Load builds a Config. An explicit path must exist; with an empty path
// DefaultFile is used only if present.
func Load(path string) (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg := Default()

	file, explicit := path, path != ""
	if !explicit {
		file = DefaultFile
	}
	if _, err := toml.DecodeFile(file, cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %q: %w", file, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("POFILL_CSV_DIR"); v != "" {
		c.CSVDir = v
	}
	if v := os.Getenv("POFILL_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("POFILL_NORMALIZE"); v != "" {
		c.Normalize = v
	}
}

// Validate checks the rules that do not need any file access.
func (c *Config) Validate() error {
	if _, err := pofill.NormalizerFor(c.Normalize); err != nil {
		return fmt.Errorf("config: normalize: %w", err)
	}
	if strings.TrimSpace(c.CSVDir) == "" {
		return fmt.Errorf("config: csv_dir must not be empty")
	}
	for name, cols := range map[string]Columns{"source": c.Source, "target": c.Target} {
		if cols.Key == "" {
			return fmt.Errorf("config: %s.key must not be empty", name)
		}
		if len(cols.Values) == 0 {
			return fmt.Errorf("config: %s.values must name at least one column", name)
		}
		for _, v := range cols.Values {
			if v == "" {
				return fmt.Errorf("config: %s.values contains an empty column name", name)
			}
		}
	}
	return nil
}
