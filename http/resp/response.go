package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/logger"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	url       *url.URL
	user      logger.LogUser
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// Used with Responder.Json and Responder.Err.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		r.data = d
		return nil
	}
}

// Err logs the error and, unless Code() already set one,
// sets the status code http.StatusInternalServerError.
//
// Errors answered with a 4xx status code are logged as warnings.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if r.code == 0 {
			r.code = http.StatusInternalServerError
		}

		if e == nil {
			return nil
		}

		_ = populateUser(d, r)

		var data map[string]any
		if r.data != nil {
			data = map[string]any{"details": r.data}
		}

		lc := newLogContext(r.r, e, data, r.user)
		if r.code < http.StatusInternalServerError {
			d.logger.Warn(e.Error(), lc)
			return nil
		}

		d.logger.Error(e.Error(), lc)
		return nil
	}
}

// Param adds the query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.Parse(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}

// User stores the user in the *Response for logging.
func User(u roadtrip.User) Fn {
	return func(_ Responder, r *Response) error {
		r.user = u
		return nil
	}
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data map[string]any, user logger.LogUser) *logger.LogContext {
	if r == nil && err == nil && data == nil && user == nil {
		return nil
	}

	return &logger.LogContext{
		Data:    data,
		Error:   err,
		Request: r,
		User:    user,
	}
}

// populateUser helps pull a user up out of the *Response.r.Context
// and into the *Response itself.
func populateUser(d Responder, r *Response) error {
	if r.user != nil {
		return nil
	}

	u, err := d.CurrentUser(r.r.Context())
	if err != nil {
		return ErrNoUser
	}

	return User(u)(d, r)
}
