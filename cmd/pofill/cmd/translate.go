package cmd

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajack/pofill"
	"github.com/javajack/pofill/internal/config"
	"github.com/javajack/pofill/internal/logging"
)

type translateOptions struct {
	configPath string
	verbose    bool

	csvDir    string
	src       string
	tgt       string
	logFile   string
	normalize string
	where     string
	report    string
}

// run validates arguments, loads both indexes and rewrites the PO file.
// Argument problems are returned before any file is touched.
func (o *translateOptions) run(c *cobra.Command, args []string, stderr io.Writer) error {
	src, err := parseLanguage("src", o.src)
	if err != nil {
		return err
	}
	tgt, err := parseLanguage("tgt", o.tgt)
	if err != nil {
		return err
	}
	if src == tgt {
		return usageErrorf("source and target languages are identical (%s)", src)
	}
	if c.Flags().Changed("normalize") {
		if _, err := pofill.NormalizerFor(o.normalize); err != nil {
			return &usageError{err: err}
		}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.override(c, cfg)
	normalizer, err := pofill.NormalizerFor(cfg.Normalize)
	if err != nil {
		return err
	}

	input := args[0]
	output := defaultOutput(input, tgt)
	if len(args) > 1 {
		output = args[1]
	}

	logger, closer, err := logging.New(logging.Options{File: cfg.LogFile, Verbose: o.verbose, Console: stderr})
	if err != nil {
		return err
	}
	defer closer.Close()

	log := logger.WithField("run", uuid.NewString())
	log.Info("=== pofill start ===")

	fail := func(msg string, err error) error {
		log.WithError(err).Error(msg)
		return &loggedError{err: err}
	}

	loadOpts := []pofill.Option{
		pofill.WithNormalizer(normalizer),
		pofill.WithRowFilter(cfg.Where),
		pofill.WithSheet(cfg.Sheet),
		pofill.WithCollisionListener(collisionLogger(log)),
	}

	srcSheet := sheetPath(cfg.CSVDir, src)
	names, err := pofill.LoadMapping(srcSheet, cfg.Source.Key, cfg.Source.Values, pofill.ModeName, loadOpts...)
	if err != nil {
		return fail("Failed to load source sheet", err)
	}
	tgtSheet := sheetPath(cfg.CSVDir, tgt)
	ids, err := pofill.LoadMapping(tgtSheet, cfg.Target.Key, cfg.Target.Values, pofill.ModeID, loadOpts...)
	if err != nil {
		return fail("Failed to load target sheet", err)
	}
	log.Infof("Loaded %d %s->ID, %d ID->%s", len(names), src, len(ids), tgt)

	log.Infof("Translating %s", direction(src, tgt))
	stats, err := pofill.Translate(input, output, names, ids,
		pofill.WithLogger(log),
		pofill.WithNormalizer(normalizer),
	)
	if err != nil {
		return fail("Translation failed", err)
	}

	if o.report != "" {
		r := newReport(src, tgt, input, output, stats)
		if err := r.write(o.report); err != nil {
			return fail("Failed to write report", err)
		}
		log.Infof("Wrote %d unresolved entries to '%s'", len(stats.Missing), o.report)
	}

	log.Info("=== pofill end ===")
	return nil
}

// override applies explicitly set flags on top of the loaded config.
func (o *translateOptions) override(c *cobra.Command, cfg *config.Config) {
	flags := c.Flags()
	if flags.Changed("csv-dir") {
		cfg.CSVDir = o.csvDir
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("normalize") {
		cfg.Normalize = o.normalize
	}
	if flags.Changed("where") {
		cfg.Where = o.where
	}
}

func collisionLogger(log logrus.FieldLogger) pofill.CollisionFunc {
	return func(key, previous, current string, row int) {
		log.WithFields(logrus.Fields{
			"key":  key,
			"from": previous,
			"to":   current,
			"row":  row,
		}).Debug("Index entry overwritten")
	}
}
