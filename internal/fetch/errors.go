package fetch

import "fmt"

type ErrorCode string

const (
	NetworkError ErrorCode = "NetworkError"
	StatusError  ErrorCode = "StatusError"
	DecodeError  ErrorCode = "DecodeError"
)

// Error describes one failed retrieval.
type Error struct {
	Code  ErrorCode
	URL   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.URL, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }
