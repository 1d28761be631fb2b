// Package validation wires go-playground/validator for the web forms and turns
// its failures into per-field messages for the templates.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sisbib/sisbib-web/internal/domain/model"
)

// New returns a validator that reports fields by their json name and knows the
// custom "rutdv" tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("rutdv", func(fl validator.FieldLevel) bool {
		return model.ValidRutDV(fl.Field().String())
	}); err != nil {
		panic(err) //nolint:forbidigo // static registration, fails only on programmer error
	}
	return v
}

// Errors maps a validation failure to field name -> message.
// It returns nil when err is not a validation failure.
func Errors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = Message(fe)
	}
	return out
}

// Message renders a single field failure.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obligatorio."
	case "email":
		return "Ingresa un email válido."
	case "max":
		return fmt.Sprintf("Máximo %s caracteres.", fe.Param())
	case "min":
		return fmt.Sprintf("Mínimo %s caracteres.", fe.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor que %s.", fe.Param())
	case "lt":
		return fmt.Sprintf("Debe ser menor que %s.", fe.Param())
	case "oneof":
		return "Debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "rutdv":
		return "Dígito verificador inválido (0-9 o K)."
	default:
		return "Valor inválido."
	}
}
