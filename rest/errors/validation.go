package errors

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TranslateValidationError turns validator field errors into a single bad request error, one
// translated message per field in declaration order. Other errors are returned unchanged.
func TranslateValidationError(err error, trans ut.Translator) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, fieldErr.Translate(trans))
	}
	return NewBadRequestError(strings.Join(messages, " "))
}
