package buffer

import (
	"errors"
	"fmt"

	util "github.com/bietkhonhungvandi212/framedb/internal/utils"
)

var (
	// ErrBufferExceeded is returned when every frame in the pool is pinned
	// during an allocation sweep.
	ErrBufferExceeded = errors.New("buffer pool exceeded: all frames pinned")
	// ErrPageNotPinned is returned when unpinning a resident page whose pin
	// count is already zero.
	ErrPageNotPinned = errors.New("page not pinned")
	// ErrPagePinned is returned when flushing a file that still has a
	// pinned page in the pool.
	ErrPagePinned = errors.New("page pinned")
	// ErrBadBuffer indicates an internal consistency violation: a frame
	// owned by a file but not marked valid.
	ErrBadBuffer = errors.New("bad buffer frame")
)

// BufferError carries the operation and page identity an error occurred on.
type BufferError struct {
	Op     string
	File   string // filename, for diagnostics
	PageNo util.PageID
	Frame  FrameID
	Err    error
}

func (e *BufferError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: file=%s page=%d frame=%d: %v", e.Op, e.File, e.PageNo, e.Frame, e.Err)
}

func (e *BufferError) Unwrap() error {
	return e.Err
}

// IsBufferExceeded reports whether err is an exhausted-pool error.
func IsBufferExceeded(err error) bool {
	return errors.Is(err, ErrBufferExceeded)
}
