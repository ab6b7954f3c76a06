// Package clipboard copies generated passwords to the system clipboard,
// falling back to an OSC 52 terminal escape sequence when no system
// clipboard is reachable.
package clipboard

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"

	sysclip "github.com/atotto/clipboard"
)

var (
	ErrNothingToCopy = errors.New("nothing to copy")
	ErrCopyFailed    = errors.New("failed to copy password, please copy manually")
	errUnsupported   = errors.New("system clipboard unavailable")
)

// Method names the path that completed a copy.
type Method string

const (
	MethodSystem   Method = "system"
	MethodTerminal Method = "terminal"
)

// Writer places text on some clipboard.
type Writer interface {
	WriteAll(text string) error
}

type systemWriter struct{}

func (systemWriter) WriteAll(text string) error {
	if sysclip.Unsupported {
		return errUnsupported
	}
	return sysclip.WriteAll(text)
}

// terminalWriter asks the terminal emulator to set its clipboard.
type terminalWriter struct {
	out io.Writer
}

func (w terminalWriter) WriteAll(text string) error {
	if w.out == nil {
		return errUnsupported
	}
	seq := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
	_, err := io.WriteString(w.out, seq)
	return err
}

// Copier tries a primary clipboard and then a fallback.
type Copier struct {
	primary  Writer
	fallback Writer
	logger   *slog.Logger
}

// New returns a Copier using the system clipboard, falling back to OSC 52
// sequences written to term.
func New(term io.Writer, logger *slog.Logger) *Copier {
	return NewWithWriters(systemWriter{}, terminalWriter{out: term}, logger)
}

// NewWithWriters returns a Copier over arbitrary writers. Either may be nil.
func NewWithWriters(primary, fallback Writer, logger *slog.Logger) *Copier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Copier{primary: primary, fallback: fallback, logger: logger}
}

// Copy writes text to the first clipboard that accepts it.
func (c *Copier) Copy(text string) (Method, error) {
	if text == "" {
		return "", ErrNothingToCopy
	}

	if c.primary != nil {
		err := c.primary.WriteAll(text)
		if err == nil {
			return MethodSystem, nil
		}
		c.logger.Warn("system clipboard copy failed, trying terminal", "error", err)
	}

	if c.fallback != nil {
		err := c.fallback.WriteAll(text)
		if err == nil {
			return MethodTerminal, nil
		}
		c.logger.Warn("terminal clipboard copy failed", "error", err)
	}

	return "", ErrCopyFailed
}
