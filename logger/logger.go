package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing to path, or to stderr when path is empty.
// debug enables the per-instruction trace. The returned func closes the
// log file.
func New(path string, debug bool) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}

	if len(path) == 0 {
		l.SetOutput(os.Stderr)
		return l, noClose, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening log file")
	}
	l.SetOutput(f)
	l.WithField("path", path).Info("Initializing chip8 log")

	closeFile := func() error {
		l.SetOutput(io.Discard)
		return f.Close()
	}
	return l, closeFile, nil
}

func noClose() error { return nil }

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
