package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans every write out to all of its writers, e.g. log file
// and STDOUT. A failing writer does not stop the others.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

// Write reports len(p) as long as at least one writer took the whole
// message, and all writer errors combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	succeeded := 0
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if written == len(p) {
			succeeded++
		}
	}
	if succeeded == 0 && len(cw.Writers) > 0 {
		return 0, err
	}
	return len(p), err
}
