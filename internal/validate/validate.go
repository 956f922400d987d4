// Package validate wraps go-playground/validator and translates rule
// failures into the service layer's ValidationError kind.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/telmov/inkpress/internal/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// messages maps validation tags to user-facing message templates.
var messages = map[string]string{
	"required": "must not be empty",
	"email":    "must be a valid email address",
	"min":      "must be at least %s characters long",
	"max":      "must be no longer than %s characters",
}

// Struct validates v and returns an *apperr.ValidationError keyed by the
// struct's json tag names when any rule fails.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Not a rule failure (e.g. a non-struct was passed).
		return err
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	fields := make(map[string][]string)
	for _, fe := range verrs {
		name := jsonFieldName(t, fe.StructField())
		fields[name] = append(fields[name], fieldMessage(fe))
	}
	return apperr.Validation(fields)
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}

func jsonFieldName(t reflect.Type, structField string) string {
	field, ok := t.FieldByName(structField)
	if !ok {
		return structField
	}
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return structField
	}
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	return tag
}
