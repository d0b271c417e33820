// Package protocol defines the wire contract and error codes shared by the SRP core
// and the transports that carry its messages to the identity provider.
package protocol

import "fmt"

// ErrorCode represents a standardized error code for SRP authentication failures.
type ErrorCode string

// SRP error codes.
const (
	// ErrCodeFormat indicates malformed hex, base64 or missing input.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"
	// ErrCodeProtocol indicates a received value violates a protocol invariant.
	ErrCodeProtocol ErrorCode = "PROTOCOL_ERROR"
	// ErrCodeSequence indicates operations were invoked out of order.
	ErrCodeSequence ErrorCode = "SEQUENCE_ERROR"
	// ErrCodeInternal indicates an unrecoverable internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Sentinels for errors.Is matching. Any *Error with the same Code matches.
var (
	ErrFormat   = &Error{Code: ErrCodeFormat}
	ErrProtocol = &Error{Code: ErrCodeProtocol}
	ErrSequence = &Error{Code: ErrCodeSequence}
	ErrInternal = &Error{Code: ErrCodeInternal}
)

// Error is a classified SRP failure.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new Error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new Error with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors for convenience

// NewFormatError creates a format error wrapping cause (which may be nil).
func NewFormatError(message string, cause error) *Error {
	return &Error{Code: ErrCodeFormat, Message: message, Err: cause}
}

// NewMissingParameterError creates a format error for an absent challenge or config field.
func NewMissingParameterError(name string) *Error {
	return NewErrorWithDetails(ErrCodeFormat, "Missing required parameter", name)
}

// NewProtocolError creates a protocol violation error.
func NewProtocolError(message string) *Error {
	return NewError(ErrCodeProtocol, message)
}

// NewUnexpectedChallengeError creates a protocol error for a challenge this client cannot answer.
func NewUnexpectedChallengeError(name string) *Error {
	return NewErrorWithDetails(ErrCodeProtocol, "Unexpected challenge", name)
}

// NewSequenceError creates an out-of-order call error.
func NewSequenceError(op string, state string) *Error {
	return NewErrorWithDetails(ErrCodeSequence, "Operation invoked out of order", fmt.Sprintf("%s in state %s", op, state))
}

// NewInternalError creates an internal error wrapping cause (which may be nil).
func NewInternalError(message string, cause error) *Error {
	return &Error{Code: ErrCodeInternal, Message: message, Err: cause}
}
