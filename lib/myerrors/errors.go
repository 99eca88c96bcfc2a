package myerrors

import (
	"fmt"
	"net/http"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func (e httpError) Unwrap() error {
	return e.err
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, err)
}

func NewNotFoundErrorf(format string, args ...interface{}) *httpError {
	return NewNotFoundError(fmt.Errorf(format, args...))
}

// NewConflictError signals an operation that makes no sense in the current
// state, like confirming an order with an empty cart.
func NewConflictError(err error) *httpError {
	return newError(http.StatusConflict, err)
}

// NewLimitExceededError signals a configured cap being hit.
func NewLimitExceededError(err error) *httpError {
	return newError(http.StatusUnprocessableEntity, err)
}

func NewLimitExceededErrorf(format string, args ...interface{}) *httpError {
	return NewLimitExceededError(fmt.Errorf(format, args...))
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, err)
}

func GetHttpStatus(err error) int {
	if err != nil {
		myError, ok := err.(httpErrorCoder)
		if ok {
			return myError.GetHTTPErrorCode()
		}
	}
	return http.StatusInternalServerError
}

func IsInvalidInput(err error) bool {
	return GetHttpStatus(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return GetHttpStatus(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return GetHttpStatus(err) == http.StatusConflict
}

func IsLimitExceeded(err error) bool {
	return GetHttpStatus(err) == http.StatusUnprocessableEntity
}
