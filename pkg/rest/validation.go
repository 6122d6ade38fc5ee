package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of the "details" array returned with a 400.
type FieldError struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

func NewFieldError(location, field, message string, value any) FieldError {
	return FieldError{Field: field, Location: location, Message: message, Value: value}
}

// BindingDetails translates gin binding failures (validator or JSON decoding)
// into FieldErrors for the body.
func BindingDetails(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			field := jsonFieldName(fe)
			details = append(details, NewFieldError("body", field, RuleMessage(field, fe.Tag(), fe.Param()), fe.Value()))
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{NewFieldError("body", typeErr.Field, fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type), nil)}
	}

	return []FieldError{NewFieldError("body", "", err.Error(), nil)}
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	if ns == "" {
		return strings.ToLower(fe.Field())
	}
	return ns
}

// RuleMessage renders a validator tag failure the way the API reports it.
func RuleMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed the %s rule", field, tag)
	}
}

var jsonNamesOnce sync.Once

// UseJSONFieldNames makes gin's validator report fields by their json tag.
func UseJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
