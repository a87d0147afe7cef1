// Package apperr classifies failures so the transport layer can map them to
// status codes without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindNoData
	KindProviderUnavailable
	KindEmptyContent
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindNoData:
		return "NO_DATA"
	case KindProviderUnavailable:
		return "PROVIDER_UNAVAILABLE"
	case KindEmptyContent:
		return "EMPTY_CONTENT"
	default:
		return "INTERNAL_ERROR"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, details any) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NoData(message string) *Error {
	return &Error{Kind: KindNoData, Message: message}
}

func ProviderUnavailable(err error) *Error {
	return &Error{Kind: KindProviderUnavailable, Message: "AI service temporarily unavailable", Err: err}
}

func EmptyContent() *Error {
	return &Error{Kind: KindEmptyContent, Message: "Report content is empty"}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the classification of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
