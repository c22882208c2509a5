package req

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/roadtrip"
)

// A ValidationError describes a field of a request whose value breaks a rule.
//
// Got is left empty when the rule is that the field is required.
type ValidationError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Got   any    `json:"got,omitempty"`
}

func (ve ValidationError) Error() string {
	if ve.Got == nil {
		return fmt.Sprintf("%s: %s", ve.Field, ve.Rule)
	}

	return fmt.Sprintf("%s: %s, got %v", ve.Field, ve.Rule, ve.Got)
}

// ValidationErrors collects every ValidationError found in a request.
// It encodes as a JSON array, ready to be the details of an error response.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}

	return strings.Join(msgs, "; ")
}

func (ValidationErrors) Unwrap() error { return roadtrip.ErrNotValid }
