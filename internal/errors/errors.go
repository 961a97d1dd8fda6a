// Package errors classifies catalog failures. An error that reaches the HTTP
// layer is either a *DomainError, whose Type picks the status code and whose
// Message is safe to show to clients, or an unclassified error that TypeOf
// reports as internal.
package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	// ErrTypeInvalidInput rejects a request before any work is done.
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	// ErrTypeUnavailable means a collaborator (postgres, NATS, the language
	// model) failed or is switched off. The request may succeed later.
	ErrTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrTypeInternal    ErrorType = "INTERNAL"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

func (e *DomainError) StackTrace() []byte { return e.Stack }

// TypeOf reports the type of the outermost DomainError in err's chain.
// Anything unclassified is internal.
func TypeOf(err error) ErrorType {
	if de, ok := asDomain(err); ok {
		return de.Type
	}
	return ErrTypeInternal
}

// Classified reports whether err already carries a DomainError.
func Classified(err error) bool {
	_, ok := asDomain(err)
	return ok
}

// PublicMessage is the text a client may see for err. Causes of unclassified
// errors stay in the logs and fallback is returned instead.
func PublicMessage(err error, fallback string) string {
	if de, ok := asDomain(err); ok {
		return de.Message
	}
	return fallback
}

func IsNotFound(err error) bool { return TypeOf(err) == ErrTypeNotFound }

func IsInvalidInput(err error) bool { return TypeOf(err) == ErrTypeInvalidInput }

// Unavailable marks cause as a collaborator failure. cause may be nil when a
// feature is switched off by configuration.
func Unavailable(message string, cause error) *DomainError {
	return classify(ErrTypeUnavailable, message, cause)
}

func NotFound(message string, cause error) *DomainError {
	return classify(ErrTypeNotFound, message, cause)
}

// InvalidInput is the validation error returned before any computation runs.
func InvalidInput(message string, cause error) *DomainError {
	return classify(ErrTypeInvalidInput, message, cause)
}

func Internal(message string, cause error) *DomainError {
	return classify(ErrTypeInternal, message, cause)
}

// classify keeps the stack of a go-errors cause and otherwise records the
// caller of the exported constructor.
func classify(t ErrorType, message string, cause error) *DomainError {
	var stack []byte
	var withStack *goerrors.Error
	switch {
	case stderrors.As(cause, &withStack):
		stack = withStack.Stack()
	case cause != nil:
		stack = goerrors.Wrap(cause, 2).Stack()
	default:
		stack = goerrors.Wrap(message, 2).Stack()
	}
	return &DomainError{Type: t, Message: message, Err: cause, Stack: stack}
}

func asDomain(err error) (*DomainError, bool) {
	var de *DomainError
	ok := stderrors.As(err, &de)
	return de, ok
}
