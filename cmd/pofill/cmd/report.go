package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javajack/pofill"
)

// report is the YAML document written by --report.
type report struct {
	Source   string   `yaml:"source"`
	Target   string   `yaml:"target"`
	Input    string   `yaml:"input"`
	Output   string   `yaml:"output"`
	Total    int      `yaml:"total"`
	Replaced int      `yaml:"replaced"`
	Missing  []string `yaml:"missing"`
}

func newReport(src, tgt, input, output string, stats *pofill.Stats) *report {
	missing := stats.Missing
	if missing == nil {
		missing = []string{}
	}
	return &report{
		Source:   src,
		Target:   tgt,
		Input:    input,
		Output:   output,
		Total:    stats.Total,
		Replaced: stats.Replaced,
		Missing:  missing,
	}
}

func (r *report) write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", path, err)
	}
	return nil
}
