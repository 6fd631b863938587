// Package clipboard copies text to the system clipboard without blocking the caller.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/mcncl/jxview/internal/errors"
)

// Copier writes to the clipboard asynchronously.
type Copier struct {
	write func(string) error
}

// New returns a Copier backed by the system clipboard.
func New() *Copier {
	return &Copier{write: clipboard.WriteAll}
}

// NewWithWriter returns a Copier that writes through fn.
func NewWithWriter(fn func(string) error) *Copier {
	return &Copier{write: fn}
}

// Copy starts writing text and calls done with the result from another
// goroutine. Empty text fails immediately with ErrNothingToCopy and done is
// not called.
func (c *Copier) Copy(text string, done func(error)) error {
	if text == "" {
		return errors.ErrNothingToCopy
	}
	go func() {
		err := c.write(text)
		if err != nil {
			err = errors.NewClipboardError("failed to write to the clipboard", err)
		}
		if done != nil {
			done(err)
		}
	}()
	return nil
}

// Unsupported reports whether the platform has no clipboard utility.
func Unsupported() bool {
	return clipboard.Unsupported
}
