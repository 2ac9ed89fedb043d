package cli

import (
	"errors"
	"fmt"
)

// ErrUsage matches every invalid invocation.
var ErrUsage = errors.New("usage error")

type usageError struct {
	msg string
}

func newUsageError(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
