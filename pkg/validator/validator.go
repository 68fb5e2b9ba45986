package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// NonFieldErrors keys messages that do not belong to a single form field.
const NonFieldErrors = "__all__"

var (
	setupOnce     sync.Once
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
	choiceRegex   = regexp.MustCompile(`^\s*[1-9][0-9]*\s*$`)
)

// FormErrors maps form field names to a human readable message. It doubles as
// an error so services can report field problems found after binding.
type FormErrors map[string]string

func (e FormErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(messages, "; ")
}

// Setup registers the form tag name and custom rules on gin's validator engine.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})
		// choice holds the id of a selectable row, submitted as text.
		_ = v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
			return choiceRegex.MatchString(fl.Field().String())
		})
	})
}

// ToFormErrors converts a binding error into per-field messages.
func ToFormErrors(err error) FormErrors {
	var formErrs FormErrors
	if errors.As(err, &formErrs) {
		return formErrs
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := make(FormErrors, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := fieldName(fieldError)
			if _, seen := out[field]; seen {
				continue
			}
			out[field] = getFieldErrorMessage(fieldError)
		}
		return out
	}

	return FormErrors{NonFieldErrors: "Enter valid data."}
}

// fieldName keys errors on list elements ("publishers[1]") by the list.
func fieldName(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i > 0 {
		field = field[:i]
	}
	return field
}

func getFieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "eqfield":
		return "The two password fields didn't match."
	case "choice":
		if strings.Contains(fe.Field(), "[") {
			return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
		}
		return "Select a valid choice. That choice is not one of the available choices."
	case "number":
		return "Enter a whole number."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Enter a valid value."
	}
}

// AsFormErrors reports whether err carries field errors raised by a service.
func AsFormErrors(err error) (FormErrors, bool) {
	var formErrs FormErrors
	if errors.As(err, &formErrs) {
		return formErrs, true
	}
	return nil, false
}
