package validate

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	vv := validator.New(validator.WithRequiredStructEnabled())
	// report json names so messages match the request body
	vv.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return vv
}

// Error is a rejected input. Handlers answer it with 400.
type Error struct {
	Field string
	Msg   string
}

func (e *Error) Error() string { return e.Msg }

func Fail(field, msg string) *Error { return &Error{Field: field, Msg: msg} }

// Struct runs the `validate` tags of s and reports the first failure.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) || len(fes) == 0 {
		return err
	}
	fe := fes[0]
	return &Error{Field: fe.Field(), Msg: message(fe)}
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return "invalid email format"
	case "min":
		if fe.Kind() == reflect.String {
			return f + " must be at least " + fe.Param() + " characters long"
		}
		if fe.Kind() == reflect.Slice {
			return f + " must not be empty"
		}
		return f + " must be at least " + fe.Param()
	case "max":
		return f + " must be at most " + fe.Param()
	case "gt":
		return f + " must be greater than " + fe.Param()
	case "gte":
		return f + " must not be negative"
	case "oneof":
		return "invalid " + f + ", expected one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return f + " is invalid"
	}
}

// ID parses a positive integer identifier from a path or query value.
func ID(field, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Fail(field, field+" is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, Fail(field, "invalid "+field)
	}
	return n, nil
}

// OptionalID is ID for values that may be absent; 0 means absent.
func OptionalID(field, s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return ID(field, s)
}
