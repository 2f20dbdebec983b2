package utils

import "net/http"

// ApiError is the typed error handlers raise. The error boundary in
// middleware converts it into the response envelope; anything else becomes
// an opaque 500.
type ApiError struct {
	StatusCode int
	Message    string
	Errs       []string
}

func (e *ApiError) Error() string {
	return e.Message
}

func BadRequest(message string, errs ...string) *ApiError {
	return &ApiError{StatusCode: http.StatusBadRequest, Message: message, Errs: errs}
}

func Unauthorized(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusForbidden, Message: message}
}

func NotFound(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusNotFound, Message: message}
}

func Internal(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusInternalServerError, Message: message}
}
