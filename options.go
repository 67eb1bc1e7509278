package pofill

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options holds configuration shared by the mapping loader and the translator.
type Options struct {
	logger            logrus.FieldLogger
	normalizer        Normalizer
	sheet             string
	rowFilter         string
	collisionListener CollisionListener
}

func defaultOptions() *Options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Options{
		logger:     discard,
		normalizer: Normalize,
	}
}

func applyOptions(opts []Option) *Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures LoadMapping, Describe and Translate.
type Option func(*Options)

// WithLogger sets the logger used for per-entry and summary messages (default: discard).
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNormalizer sets the normalization policy (default: Normalize).
// The loader and the translator must be given the same one.
func WithNormalizer(n Normalizer) Option {
	return func(o *Options) {
		if n != nil {
			o.normalizer = n
		}
	}
}

// WithSheet selects the worksheet of an .xlsx source (default: the first sheet).
func WithSheet(name string) Option {
	return func(o *Options) { o.sheet = name }
}

// WithRowFilter sets an expr-lang boolean expression; data rows for which it
// evaluates to false are not indexed.
func WithRowFilter(expression string) Option {
	return func(o *Options) { o.rowFilter = expression }
}

// WithCollisionListener registers a listener notified whenever an index entry is overwritten.
func WithCollisionListener(l CollisionListener) Option {
	return func(o *Options) { o.collisionListener = l }
}
