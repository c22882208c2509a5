package resp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/resp"
)

func TestErrors(t *testing.T) {
	tcs := []struct {
		err      error
		sentinel error
	}{
		{resp.ErrDone, roadtrip.ErrUnavailable},
		{resp.ErrInvalid, roadtrip.ErrNotValid},
		{resp.ErrMissingData, roadtrip.ErrUnexpected},
		{resp.ErrNotFound, roadtrip.ErrNotExist},
		{resp.ErrNoUser, resp.ErrNotFound},
	}

	for _, tc := range tcs {
		t.Run(tc.err.Error(), func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}
