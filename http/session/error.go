package session

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/roadtrip"
)

var (
	ErrNotValid = fmt.Errorf("%w: session value", roadtrip.ErrNotValid)
	ErrNoUser   = errors.New("no user")
)
