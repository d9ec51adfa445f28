package core

// Error pairs one of the sentinel kinds with a caller-facing message. The
// message is surfaced verbatim in API envelopes; the kind drives the status
// code via errors.Is.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Unwrap() error { return e.kind }

func InvalidInput(message string) error {
	return &Error{kind: ErrInvalidInput, message: message}
}

func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

func Forbidden(message string) error {
	return &Error{kind: ErrForbidden, message: message}
}

func Unauthenticated(message string) error {
	return &Error{kind: ErrUnauthenticated, message: message}
}
