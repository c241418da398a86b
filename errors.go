package threads

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Client matches exactly one of them
// through errors.Is.
var (
	ErrTransport  = errors.New("transport error")
	ErrHTTPStatus = errors.New("HTTP status error")
	ErrDecode     = errors.New("decode error")
)

// TransportError reports a request that did not complete: DNS, dial, TLS,
// I/O or a done context.
type TransportError struct {
	DocID string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("threads: %s (doc_id %s): %v", ErrTransport, e.DocID, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError reports a non-2xx response. Body holds at most the first
// bodyExcerptSize bytes of the response.
type HTTPStatusError struct {
	DocID      string
	StatusCode int
	Body       []byte
}

const bodyExcerptSize = 512

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("threads: %s (doc_id %s): unexpected HTTP status %d", ErrHTTPStatus, e.DocID, e.StatusCode)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

// DecodeError reports a body that is not JSON or does not have the expected shape.
type DecodeError struct {
	DocID string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("threads: %s (doc_id %s): %v", ErrDecode, e.DocID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// MissingFieldError reports a required key that is absent or null. Field is
// the dotted path from the response root.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
