package credentials

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaskedSecret replaces the secret in list views.
const MaskedSecret = "********"

// Record is a single stored credential.
type Record struct {
	Identifier string `validate:"min=3,label" yaml:"identifier"`
	Username   string `validate:"required,label" yaml:"username"`
	Secret     string `validate:"required,utf8" yaml:"secret"`
}

// Masked returns a copy of the record with the secret redacted.
func (r Record) Masked() Record {
	r.Secret = MaskedSecret

	return r
}

func (r Record) matches(identifier, username string) bool {
	return r.Identifier == identifier && r.Username == username
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("yaml"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("label", validateLabel)
	_ = v.RegisterValidation("utf8", validateUTF8)

	return v
}

// validateLabel accepts valid UTF-8 made of printable characters only.
func validateLabel(fl validator.FieldLevel) bool {
	value := fl.Field().String()

	if !utf8.ValidString(value) {
		return false
	}

	for _, r := range value {
		if !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

func validateUTF8(fl validator.FieldLevel) bool {
	return utf8.ValidString(fl.Field().String())
}

// Validate checks the record against the storage rules.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))

	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "required":
		return fe.Field() + " must not be empty"
	case "label":
		return fe.Field() + " must contain printable characters only"
	case "utf8":
		return fe.Field() + " must be valid UTF-8"
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
