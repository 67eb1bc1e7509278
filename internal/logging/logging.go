// Package logging builds the run logger: one logrus instance writing
// timestamped text to a log file and to the console.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is used for every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// Options configures New.
type Options struct {
	// File is truncated and written on every run. Empty disables file output.
	File string
	// Verbose lowers the level from Info to Debug.
	Verbose bool
	// Console receives the same lines as File (default: os.Stderr).
	Console io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and the closer for its log file. The caller owns the
// closer and must close it when the run ends.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var (
		out    = console
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("create log file %q: %w", opts.File, err)
		}
		out = io.MultiWriter(f, console)
		closer = f
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
		DisableColors:   true,
	})
	logger.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger, closer, nil
}
