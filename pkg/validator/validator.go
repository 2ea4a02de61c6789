package validator

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// Validator provides validation functionality
type Validator interface {
	MissingFields(interface{}) []string
}

type validator struct {
	engine *playground.Validate
}

func New() Validator {
	engine := playground.New()
	// Report fields by their JSON names so callers can echo them to clients.
	engine.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return &validator{engine: engine}
}

// MissingFields returns the JSON names of fields failing a required rule,
// in declaration order. Zero values count as missing.
func (v *validator) MissingFields(obj interface{}) []string {
	err := v.engine.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	var missing []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}
