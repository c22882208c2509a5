package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

const requiredRule = "required"

// validator checks structs against their "validate" struct tags,
// naming fields the way requests spell them.
type validator struct {
	valid *v10.Validate
}

func newValidator() validator {
	v := v10.New()
	v.RegisterTagNameFunc(requestFieldName)

	return validator{v}
}

// requestFieldName names field by its json tag, falling back to its schema tag.
func requestFieldName(field reflect.StructField) string {
	for _, key := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate returns ValidationErrors listing every field of structPtr breaking its rules.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verrs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		verrs = append(verrs, newValidationError(fe))
	}

	return verrs
}

// newValidationError translates fe, dropping the struct's own name from the field path.
func newValidationError(fe v10.FieldError) ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	ve := ValidationError{Field: field, Rule: rule}
	if fe.Tag() != requiredRule {
		ve.Got = fe.Value()
	}

	return ve
}
