package api

import (
	"errors"
	"fmt"
)

// ErrOperationFailed is the single failure class of the transport. Every
// error returned by Client matches it with errors.Is.
var ErrOperationFailed = errors.New("operation failed")

// OperationError wraps a failed call. Status is zero for network-level
// failures; Message carries the server-supplied {error} text when present.
type OperationError struct {
	Op      string
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s failed: %s %s returned status %d", e.Op, e.Method, e.Path, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s failed", e.Op)
	}
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is makes every OperationError match ErrOperationFailed.
func (e *OperationError) Is(target error) bool {
	return target == ErrOperationFailed
}

// ServerMessage returns the server-supplied error text carried by err, or ""
func ServerMessage(err error) string {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Message
	}
	return ""
}

// MessageOr returns the server-supplied error text of err, falling back to
// the given generic message.
func MessageOr(err error, fallback string) string {
	if msg := ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// IsConnectivity reports whether err never reached the server
func IsConnectivity(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr) && opErr.Status == 0
}
