package utils

import (
	"errors"
	"fmt"

	"github.com/kataras/iris/v12"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidationFailed
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindKYCRequired
	KindVerificationUnavailable
)

func (k Kind) Status() int {
	switch k {
	case KindValidationFailed, KindKYCRequired:
		return iris.StatusBadRequest
	case KindUnauthenticated:
		return iris.StatusUnauthorized
	case KindForbidden:
		return iris.StatusForbidden
	case KindNotFound:
		return iris.StatusNotFound
	case KindVerificationUnavailable:
		return iris.StatusServiceUnavailable
	}
	return iris.StatusInternalServerError
}

func (k Kind) Code() string {
	switch k {
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindKYCRequired:
		return "kyc_required"
	case KindVerificationUnavailable:
		return "verification_unavailable"
	}
	return "server_error"
}

// AppError is the error type every service returns to the HTTP layer.
type AppError struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Code(), e.Message, e.Err)
	}
	return e.Kind.Code() + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Retryable reports whether the caller may repeat the request unchanged.
func (e *AppError) Retryable() bool { return e.Kind == KindVerificationUnavailable }

func ValidationFailed(message string) *AppError {
	return &AppError{Kind: KindValidationFailed, Message: message}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func KYCRequired(message string) *AppError {
	return &AppError{Kind: KindKYCRequired, Message: message}
}

func VerificationUnavailable(err error) *AppError {
	return &AppError{Kind: KindVerificationUnavailable, Message: "Verification service unavailable, please retry", Err: err}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the kind of err, KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
