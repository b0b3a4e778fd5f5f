package services

import "fmt"

// AppError carries an HTTP status alongside a message safe to return to the
// client. Err keeps the underlying cause for logs.
type AppError struct {
	HTTPCode int
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(httpCode int, message string) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message}
}

func newAppErrorWithData(httpCode int, message string, data interface{}) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Data: data}
}

func wrapAppError(httpCode int, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Err: err}
}
