package auth

import (
	"fmt"

	"github.com/xy-planning-network/roadtrip"
)

var (
	ErrBadState = fmt.Errorf("%w: oauth state", roadtrip.ErrNotValid)
	ErrNoCode   = fmt.Errorf("%w: no authorization code", roadtrip.ErrNotValid)
	ErrProvider = fmt.Errorf("%w: oauth provider", roadtrip.ErrUnavailable)
)
