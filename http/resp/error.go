package resp

import (
	"fmt"

	"github.com/xy-planning-network/roadtrip"
)

// Each error wraps the roadtrip sentinel callers branch on.
var (
	ErrDone        = fmt.Errorf("%w: request context done", roadtrip.ErrUnavailable)
	ErrInvalid     = fmt.Errorf("%w: response option", roadtrip.ErrNotValid)
	ErrMissingData = fmt.Errorf("%w: response missing data", roadtrip.ErrUnexpected)
	ErrNotFound    = fmt.Errorf("%w: request context", roadtrip.ErrNotExist)
	ErrNoUser      = fmt.Errorf("%w: no user", ErrNotFound)
)
