package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies a resolution failure.
type Kind int

const (
	// InvalidInput means the identifier was malformed or empty; nothing
	// was attempted.
	InvalidInput Kind = iota

	// NotFound means the source was recognized but is currently
	// unavailable, expired, or removed.
	NotFound

	// NoUsableMedia means candidates were found but none could be
	// fetched.
	NoUsableMedia

	// UpstreamError means the extractor's own dependency failed
	// unexpectedly.
	UpstreamError

	// Timeout means a stage exceeded its time budget.
	Timeout
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case NoUsableMedia:
		return "no usable media"
	case UpstreamError:
		return "upstream error"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a resolution failure tagged with its Kind. Every error that
// crosses the pipeline boundary is one of these.
type Error struct {
	Kind    Kind
	Message string
	Err     error // Underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr builds an Error around an underlying cause.
func WrapErr(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from err. Errors that are not resolution
// errors report UpstreamError, except recognizable timeouts.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	if isTimeout(err) {
		return Timeout
	}
	return UpstreamError
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
