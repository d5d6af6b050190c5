// ABOUTME: io.Writer that fans log output out to several sinks.
// ABOUTME: Every sink gets each write; errors are combined with multierr.
package logging

import (
	"io"

	"go.uber.org/multierr"
)

// combinedWriter writes to every writer even when one of them fails.
type combinedWriter struct {
	writers []io.Writer
}

func newCombinedWriter(writers ...io.Writer) *combinedWriter {
	return &combinedWriter{writers: writers}
}

func (cw *combinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n = written
	}
	if err == nil {
		n = len(p)
	}
	return n, err
}
