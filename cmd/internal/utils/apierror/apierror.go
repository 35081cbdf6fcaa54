package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the JSON error envelope every route returns on failure.
// Code is the HTTP status to respond with; the value itself marshals to the
// response body.
type ErrorResponse interface {
	error
	Code() int
}

type simple struct {
	status  int
	Message string `json:"message"`
}

func (s *simple) Error() string { return s.Message }
func (s *simple) Code() int     { return s.status }

func NewSimple(code int, message string) ErrorResponse {
	return &simple{status: code, Message: message}
}

var (
	InternalServerError       = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError             = NewSimple(http.StatusNotFound, "Resource not found")
	MalformedBodyError        = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidAuthTokenError     = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")
	UserNotFoundError         = NewSimple(http.StatusNotFound, "User not found")
	InvalidCredentialsError   = NewSimple(http.StatusUnauthorized, "Invalid credentials")
	EmailAlreadyExistsError   = NewSimple(http.StatusConflict, "Email already registered")
	DuplicateAppointmentError = NewSimple(http.StatusConflict, "Appointment id already exists")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter: %s", name))
}

func NewInvalidParamTypeError(name, want string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %s must be of type %s", name, want))
}

// FromValidationError turns a validator failure into a 400 naming the first
// offending field.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return NewSimple(http.StatusBadRequest, fmt.Sprintf("Field %q failed validation (%s)", f.Field(), f.Tag()))
	}
	return NewSimple(http.StatusBadRequest, "Validation failed")
}
