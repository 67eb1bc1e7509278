package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// Execute runs pofill with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if len(args) == 0 {
		root.SetOut(stdout)
		_ = root.Help()
		return ExitOK
	}

	executed, err := root.ExecuteC()
	if executed == nil {
		executed = root
	}
	return exitCode(err, executed.UsageString(), stderr)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &translateOptions{}

	root := &cobra.Command{
		Use:   "pofill [flags] <input.po> [output.po]",
		Short: "Fill untranslated PO entries from localized item sheets",
		Long: `pofill fills empty msgstr entries of a gettext PO file with item names
taken from per-language item sheets.

Each msgid is normalized and looked up in the source sheet (Item_<SRC>.csv)
to find its item key; the key is looked up in the target sheet
(Item_<TGT>.csv) to find the translated name. Entries without a match are
left untouched and reported.

Languages: ` + languageCodes(),
		Args:          usageArgs(cobra.RangeArgs(1, 2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			return opts.run(c, args, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ./pofill.toml if present)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log index collisions and other debug output")

	f := root.Flags()
	f.StringVar(&opts.csvDir, "csv-dir", "csv", "directory of Item_<LANG>.csv files")
	f.StringVar(&opts.src, "src", "en", "source language")
	f.StringVar(&opts.tgt, "tgt", "jp", "target language")
	f.StringVar(&opts.logFile, "log-file", "pofill.log", "log file, truncated on every run")
	f.StringVar(&opts.normalize, "normalize", "strict", "name normalization policy: strict or markup")
	f.StringVar(&opts.where, "where", "", "expression selecting the sheet rows to index, e.g. 'key != \"0\"'")
	f.StringVar(&opts.report, "report", "", "write unresolved msgids as YAML to this file")

	root.AddCommand(newDescribeCmd(stdout), newVersionCmd(stdout))
	return root
}
