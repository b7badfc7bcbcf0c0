package logging

import (
	"io"

	"go.uber.org/multierr"
)

// TeeWriter duplicates every write to all of its writers. A failing writer
// does not stop the others, its error is combined into the result.
type TeeWriter struct {
	writers []io.Writer
}

func NewTeeWriter(writers ...io.Writer) *TeeWriter {
	return &TeeWriter{writers: writers}
}

func (tw *TeeWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range tw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		err = multierr.Append(err, werr)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
