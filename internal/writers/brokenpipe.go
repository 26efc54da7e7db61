package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means the reading end of an output went
// away: EPIPE from stdout or a FIFO, or io.ErrClosedPipe from an in-process pipe.
// The error may be wrapped or joined.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
