package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/schema"
)

type ErrorType string

const (
	ErrValidation       ErrorType = "VALIDATION_ERROR"
	ErrPayloadTooLarge  ErrorType = "PAYLOAD_TOO_LARGE_ERROR"
	ErrUnsupportedMedia ErrorType = "UNSUPPORTED_MEDIA_TYPE_ERROR"
	ErrMissingField     ErrorType = "MISSING_FIELD_ERROR"
	ErrTypeMismatch     ErrorType = "TYPE_MISMATCH_ERROR"
	ErrInvalidFormat    ErrorType = "INVALID_FORMAT_ERROR"
	ErrStorage          ErrorType = "STORAGE_ERROR"
	ErrFatal            ErrorType = "FATAL_ERROR"
)

type AppError struct {
	Code    int       `json:"-"`
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Rule    string    `json:"rule,omitempty"`

	// never serialized, logged by the caller
	cause error
}

func (a AppError) Error() string {
	if a.Field != "" {
		return fmt.Sprintf("%s: %s: %s", a.Type, a.Field, a.Message)
	}
	return fmt.Sprintf("%s: %s", a.Type, a.Message)
}

func (a AppError) Unwrap() error {
	return a.cause
}

func (a AppError) Serialize(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.Code)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		panic(a)
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func New(msg string) error {
	return errors.New(msg)
}

func HandleBindError(err error) AppError {
	if errors.As(err, &AppError{}) {
		return AsAppError(err)
	}
	if Is(err, io.EOF) {
		return NewValidationError("No request body")
	}

	var (
		syntaxErr  *json.SyntaxError
		typeErr    *json.UnmarshalTypeError
		schemaErrs schema.MultiError
		sizeErr    *http.MaxBytesError
	)
	var vErr AppError
	switch {
	case errors.As(err, &sizeErr):
		vErr = NewPayloadTooLargeError(sizeErr.Limit)
	case errors.As(err, &syntaxErr), Is(err, io.ErrUnexpectedEOF):
		vErr = NewValidationError("request body is not valid JSON")
	case errors.As(err, &typeErr):
		vErr = NewValidationError("request body must be a JSON object")
	case errors.As(err, &schemaErrs):
		vErr = NewValidationError("invalid form body received")
	default:
		vErr = NewValidationError("invalid request received")
	}
	vErr.cause = err

	return vErr
}

func NewValidationError(msg string) AppError {
	return AppError{
		Code:    http.StatusBadRequest,
		Type:    ErrValidation,
		Message: msg,
	}
}

func NewPayloadTooLargeError(limit int64) AppError {
	return AppError{
		Code:    http.StatusRequestEntityTooLarge,
		Type:    ErrPayloadTooLarge,
		Message: fmt.Sprintf("request body must not exceed %d bytes", limit),
	}
}

func NewUnsupportedMediaTypeError(contentType string) AppError {
	return AppError{
		Code:    http.StatusUnsupportedMediaType,
		Type:    ErrUnsupportedMedia,
		Message: fmt.Sprintf("unsupported content type %q, expected application/json or application/x-www-form-urlencoded", contentType),
	}
}

func NewMissingFieldError(field string) AppError {
	return AppError{
		Code:    http.StatusUnprocessableEntity,
		Type:    ErrMissingField,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
		Rule:    "required",
	}
}

func NewTypeMismatchError(field, expected string) AppError {
	return AppError{
		Code:    http.StatusUnprocessableEntity,
		Type:    ErrTypeMismatch,
		Message: fmt.Sprintf("%s must be a %s", field, expected),
		Field:   field,
		Rule:    "type",
	}
}

func NewInvalidFormatError(field, rule, msg string) AppError {
	return AppError{
		Code:    http.StatusUnprocessableEntity,
		Type:    ErrInvalidFormat,
		Message: msg,
		Field:   field,
		Rule:    rule,
	}
}

func NewStorageError(err error) AppError {
	return AppError{
		Code:    http.StatusInternalServerError,
		Type:    ErrStorage,
		Message: "Oops! we could not save your request.",
		cause:   err,
	}
}

func NewFatalError(err error) AppError {
	return AppError{
		Code:    http.StatusInternalServerError,
		Type:    ErrFatal,
		Message: "Oops! something happened on our end.",
		cause:   err,
	}
}

func NewUnknownError(err any) AppError {
	return NewFatalError(fmt.Errorf("%v", err))
}

// WithField attaches the offending field to an error produced by a field
// predicate that does not know its own field name.
func WithField(err error, field string) error {
	apperr := new(AppError)
	if !errors.As(err, apperr) {
		return err
	}
	e := *apperr
	e.Field = field
	return e
}

func AsAppError(err error) AppError {
	apperr := new(AppError)
	if errors.As(err, apperr) {
		return *apperr
	}
	return NewFatalError(err)
}
