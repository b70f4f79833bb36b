package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kinds for the failure classes an evaluation can report
const (
	// KindSyntax covers unreadable input: unterminated lists, a closing
	// paren with no opener, a misplaced dot, an improper list in call
	// position.
	KindSyntax = "SYNTAX"

	// KindUnbound means a symbol lookup failed in every enclosing
	// environment.
	KindUnbound = "UNBOUND"

	// KindArgs means a special form, builtin, or closure was called with
	// the wrong number of arguments.
	KindArgs = "ARGS"

	// KindType means a value of the wrong tag appeared where a specific
	// tag was required.
	KindType = "TYPE"
)

// EvalError represents a structured evaluation error with a kind and context
type EvalError struct {
	Kind    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *EvalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows error unwrapping
func (e *EvalError) Unwrap() error {
	return e.Cause
}

// New creates a new EvalError
func New(kind, message string) *EvalError {
	return &EvalError{
		Kind:    kind,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Newf creates a new EvalError with a formatted message
func Newf(kind, format string, args ...interface{}) *EvalError {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap creates a new EvalError wrapping an existing error
func Wrap(kind, message string, cause error) *EvalError {
	return &EvalError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *EvalError) WithContext(key string, value interface{}) *EvalError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *EvalError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// KindOf returns the kind of an evaluation error, or "" for any other error
func KindOf(err error) string {
	var evalErr *EvalError
	if stderrors.As(err, &evalErr) {
		return evalErr.Kind
	}
	return ""
}

// IsKind checks if an error is an EvalError of the given kind
func IsKind(err error, kind string) bool {
	return KindOf(err) == kind
}

// Helper constructors for common error scenarios

// NewSyntaxError creates a syntax error
func NewSyntaxError(message string) *EvalError {
	return New(KindSyntax, message)
}

// NewUnboundError creates an unbound-symbol error
func NewUnboundError(name string) *EvalError {
	return New(KindUnbound, fmt.Sprintf("symbol %s is not bound", name)).
		WithContext("symbol", name)
}

// NewArgsError creates a wrong-arity error
func NewArgsError(operator, message string) *EvalError {
	return New(KindArgs, fmt.Sprintf("%s: %s", operator, message)).
		WithContext("operator", operator)
}

// NewTypeError creates a wrong-tag error
func NewTypeError(message string) *EvalError {
	return New(KindType, message)
}
