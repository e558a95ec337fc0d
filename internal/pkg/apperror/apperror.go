// FILE: internal/pkg/apperror/apperror.go
// Business error taxonomy. Services return *AppError for every rejected
// precondition; the HTTP boundary maps Code to a transport status.
package apperror

import "fmt"

type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(format string, args ...interface{}) *AppError {
	return New(404, fmt.Sprintf(format, args...))
}

func BadRequest(format string, args ...interface{}) *AppError {
	return New(400, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...interface{}) *AppError {
	return New(403, fmt.Sprintf(format, args...))
}

func Conflict(format string, args ...interface{}) *AppError {
	return New(409, fmt.Sprintf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *AppError {
	return New(401, fmt.Sprintf(format, args...))
}
