package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the struct tags of config and the cross-field constraints of c.
// Commands pass the configuration itself, through cobraext.Validate.
func (c Config) Validate(config any) error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("validating configuration: %w", translate(err))
	}

	// Without a policy file the flags alone must form a satisfiable policy.
	if c.PolicyFile == "" {
		if err := c.Policy().Validate(); err != nil {
			return fmt.Errorf("validating configuration: %w", err)
		}
	}

	return nil
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	return validate, nil
}

// registerExclusive adds a validator ensuring two fields are mutually exclusive,
// and names fields by their label tag in error messages.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive returns false if both string fields are non-empty.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	if field.Kind() != reflect.String || other.Kind() != reflect.String {
		return true
	}

	return field.String() == "" || other.String() == ""
}

// translate turns validator errors into one readable message per field.
func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "file":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not a readable file", fe.Field(), fe.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "exclusive":
			msgs = append(msgs, fe.Field()+" cannot be combined with --policy-file")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}
