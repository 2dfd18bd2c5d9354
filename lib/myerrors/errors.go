package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindInvalidInput
	KindNotFound
	KindDuplicateKey
	KindOptimisticLock
	KindUnavailable
	KindNotImplemented
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	case KindDuplicateKey:
		return "DuplicateKey"
	case KindOptimisticLock:
		return "OptimisticLock"
	case KindUnavailable:
		return "Unavailable"
	case KindNotImplemented:
		return "NotImplemented"
	default:
		return "Unexpected"
	}
}

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
	GetKind() Kind
}

type httpError struct {
	httpCode int
	kind     Kind
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) GetKind() Kind {
	return e.kind
}

// Message returns the text of the wrapped error, without the status prefix.
func (e httpError) Message() string {
	return e.err.Error()
}

func (e httpError) Unwrap() error {
	return e.err
}

func newError(httpCode int, kind Kind, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		kind:     kind,
		err:      err,
	}
}

// NewBadRequestError is used for malformed requests: missing parameters, type mismatches, unparsable bodies.
func NewBadRequestError(err error) *httpError {
	return newError(http.StatusBadRequest, KindInvalidInput, err)
}

func NewBadRequestErrorf(format string, args ...interface{}) *httpError {
	return NewBadRequestError(fmt.Errorf(format, args...))
}

// NewInvalidInputError is used for well-formed requests with semantically invalid values, such as a negative id.
func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusUnprocessableEntity, KindInvalidInput, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, KindNotFound, err)
}

func NewNotFoundErrorf(format string, args ...interface{}) *httpError {
	return NewNotFoundError(fmt.Errorf(format, args...))
}

func NewDuplicateKeyError(err error) *httpError {
	return newError(http.StatusConflict, KindDuplicateKey, err)
}

func NewDuplicateKeyErrorf(format string, args ...interface{}) *httpError {
	return NewDuplicateKeyError(fmt.Errorf(format, args...))
}

func NewOptimisticLockError(err error) *httpError {
	return newError(http.StatusConflict, KindOptimisticLock, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, KindUnexpected, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, KindNotImplemented, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, KindUnavailable, err)
}

func GetHTTPStatus(err error) int {
	var coder httpErrorCoder
	if err != nil && errors.As(err, &coder) {
		return coder.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}

func GetKind(err error) Kind {
	var coder httpErrorCoder
	if err != nil && errors.As(err, &coder) {
		return coder.GetKind()
	}
	return KindUnexpected
}

// GetMessage returns the message of the outermost classified error, or err.Error() for plain errors.
func GetMessage(err error) string {
	var e *httpError
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}

func IsInvalidInputError(err error) bool {
	return GetKind(err) == KindInvalidInput
}

func IsNotFoundError(err error) bool {
	return GetKind(err) == KindNotFound
}

func IsDuplicateKeyError(err error) bool {
	return GetKind(err) == KindDuplicateKey
}

func IsOptimisticLockError(err error) bool {
	return GetKind(err) == KindOptimisticLock
}
