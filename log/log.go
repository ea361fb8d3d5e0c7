package log

import (
	"io"
	stdlog "log"
	"os"

	console "github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/corpix/proquint/errors"
)

type (
	Level   = zerolog.Level
	Logger  = zerolog.Logger
	Event   = zerolog.Event
	Context = zerolog.Context

	Option func(*Options)
	// Options controls logger construction.
	// Logs are written to stderr by default, stdout belongs to command output.
	Options struct {
		Output *os.File
		Writer io.Writer
	}
)

const LevelInfo = zerolog.InfoLevel

var Default = zerolog.New(os.Stderr).With().Timestamp().Logger()

func Debug() *Event { return Default.Debug() }
func Info() *Event  { return Default.Info() }
func Warn() *Event  { return Default.Warn() }
func With() Context { return Default.With() }

// Std adapts logger to the standard library logger interface
// for the libraries which require it.
func Std(l Logger) *stdlog.Logger {
	return stdlog.New(l, "", 0)
}

//

type Config struct {
	Level string `yaml:"level"`
}

func (c *Config) Default() {
	if c.Level == "" {
		c.Level = LevelInfo.String()
	}
}

func (c *Config) Validate() error {
	_, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return errors.Wrapf(err, "invalid logging level %q", c.Level)
	}
	return nil
}

//

// WithWriter sets writer explicitly, terminal detection is skipped.
func WithWriter(w io.Writer) Option {
	return func(o *Options) { o.Writer = w }
}

func New(level string, options ...Option) (Logger, error) {
	var (
		opts = &Options{Output: os.Stderr}

		log      Logger
		logLevel Level
		err      error
		w        io.Writer
	)

	for _, option := range options {
		option(opts)
	}

	switch {
	case opts.Writer != nil:
		w = opts.Writer
	case console.IsTerminal(opts.Output.Fd()):
		w = zerolog.ConsoleWriter{Out: opts.Output}
	default:
		w = opts.Output
	}

	if level == "" {
		level = LevelInfo.String()
	}
	logLevel, err = zerolog.ParseLevel(level)
	if err != nil {
		return log, errors.Wrapf(err, "failed to parse logging level %q", level)
	}

	log = zerolog.New(w).With().
		Timestamp().Logger().
		Level(logLevel)

	return log, nil
}

func Init(level string, options ...Option) error {
	l, err := New(level, options...)
	if err != nil {
		return err
	}

	Default = l

	return nil
}
