package postgres

import (
	"fmt"
	"regexp"

	"github.com/xy-planning-network/roadtrip"
)

var (
	// errSQLSyntax is a very loose aggregation of error codes
	// originating from PostgreSQL itself
	// that are some sort of syntax issue in the statement or datatype mismatch.
	//
	// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
	errSQLSyntax = regexp.MustCompile(`SQLSTATE (42601|22P02|42704)`)

	errConnection = regexp.MustCompile(`SQLSTATE (08\w{3})|connection refused`)
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil

	case errSQLSyntax.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", roadtrip.ErrNotValid, err)

	case errConnection.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", roadtrip.ErrUnavailable, err)

	default:
		return fmt.Errorf("%w: %s", roadtrip.ErrUnexpected, err)
	}
}
