// Package apperrors defines the closed set of error kinds the ledger core
// raises. Handlers inspect the kind to pick a transport status; the core
// never deals in HTTP codes itself.
package apperrors

import "errors"

type Kind int

const (
	// KindUnexpected covers any failure outside the taxonomy below. It is
	// surfaced as an opaque server error and never leaks internal detail.
	KindUnexpected Kind = iota
	// KindValidation marks a malformed request rejected by the schema layer.
	KindValidation
	// KindInvalidArgument marks a business-rule violation: non-positive
	// amount, missing role field for the event kind, same-account transfer,
	// unknown event kind.
	KindInvalidArgument
	// KindNotFound marks a reference to an account that does not exist.
	KindNotFound
)

// Error is a tagged error carrying a human-readable message and a Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf extracts the Kind from err, unwrapping as needed. Anything that is
// not an *Error is KindUnexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
