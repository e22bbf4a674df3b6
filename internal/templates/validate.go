package templates

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	foundationerrors "git.home.luguber.info/inful/webdoc/internal/foundation/errors"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that def carries every field required to render it. The error
// names the first offending field by its YAML path, e.g. "structure.files".
func Validate(v *validator.Validate, def *Definition) error {
	err := v.Struct(def)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return foundationerrors.WrapError(err, foundationerrors.CategoryTemplate, "template validation failed").Build()
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	return foundationerrors.TemplateError("template validation failed: "+describe(field, fe)).
		WithContext("template", def.Name).
		WithContext("field", field).
		Build()
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s entry", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q check", field, fe.Tag())
	}
}

// Usable reports the first section a definition cannot be rendered without. It
// guards definitions loaded with validation disabled.
func (d *Definition) Usable() error {
	var missing string
	switch {
	case d.Format == nil:
		missing = "format"
	case d.Structure.Directories == nil:
		missing = "structure.directories"
	case d.Structure.Files == nil:
		missing = "structure.files"
	default:
		return nil
	}
	return foundationerrors.TemplateError(fmt.Sprintf("template '%s' is missing %s", d.Name, missing)).
		WithContext("template", d.Name).
		WithContext("field", missing).
		Build()
}
