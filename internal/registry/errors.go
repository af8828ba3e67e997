package registry

import (
	"errors"
	"fmt"
)

// ErrWaitTimeout is returned by WaitUntil when the predicate did not report
// done before the timeout. The last observed resource accompanies it.
var ErrWaitTimeout = errors.New("wait timed out")

// IsWaitTimeout reports whether err is a wait timeout.
func IsWaitTimeout(err error) bool {
	return errors.Is(err, ErrWaitTimeout)
}

// UnsupportedSpecError indicates a provider received a spec kind it does not
// implement. It signals a programming error, not a remote failure.
type UnsupportedSpecError struct {
	Op   string
	Kind Kind
}

func (e *UnsupportedSpecError) Error() string {
	return fmt.Sprintf("%s: unsupported resource kind %q", e.Op, e.Kind)
}
