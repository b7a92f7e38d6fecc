package errors

import "net/http"

// RequestError is reported to the client as is, with the status code it carries.
type RequestError struct {
	Status int
	msg    string
}

func (e *RequestError) Error() string {
	return e.msg
}

func NewBadRequestError(text string) error {
	return &RequestError{Status: http.StatusBadRequest, msg: text}
}

func NewNotFoundError(text string) error {
	return &RequestError{Status: http.StatusNotFound, msg: text}
}

func NewForbiddenError(text string) error {
	return &RequestError{Status: http.StatusForbidden, msg: text}
}

func NewConflictError(text string) error {
	return &RequestError{Status: http.StatusConflict, msg: text}
}

// NewInternalError hides the underlying failure behind text.
func NewInternalError(text string) error {
	return &RequestError{Status: http.StatusInternalServerError, msg: text}
}
