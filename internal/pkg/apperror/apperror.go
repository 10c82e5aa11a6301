package apperror

import "errors"

var (
	// ErrNotFound means the subject node or a referenced parent does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation means the mutation would break the tree, e.g. a cycle.
	ErrInvalidOperation = errors.New("invalid operation")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func InvalidOperation(message string) error {
	return &Error{Kind: ErrInvalidOperation, Message: message}
}
