package ngr

import (
	"fmt"
)

// A FormatError reports that a level descriptor does not describe valid
// NGR geometry.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("ngr: invalid format: %s", string(e))
}

// An InternalError reports that an internal error was encountered.
type InternalError string

func (e InternalError) Error() string {
	return fmt.Sprintf("ngr: internal error: %s", string(e))
}

// minInt64 returns the smaller of x or y.
func minInt64(a, b int64) int64 {
	if a <= b {
		return a
	}
	return b
}
