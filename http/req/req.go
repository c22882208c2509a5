package req

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/xy-planning-network/roadtrip"
)

type Parser struct {
	queryParamDecoder queryParamDecoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		queryParamDecoder: newQueryParamDecoder(),
		validator:         newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("roadtrip/http/req: %w: ParseBody called with non-pointer: %s", roadtrip.ErrUnexpected, err)
	}

	if err != nil {
		return fmt.Errorf("roadtrip/http/req: %w: failed decoding request body: %s", roadtrip.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("roadtrip/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseDocument decodes the JSON object in *http.Request.Body into a roadtrip.Document
// and, to validate the fields the application relies on, into a pointer to a struct as well.
//
// Fields of the object structPtr does not declare are kept in the roadtrip.Document as is.
// A body that is not a JSON object returns ErrBadFormat.
func (p *Parser) ParseDocument(body io.Reader, structPtr any) (roadtrip.Document, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("roadtrip/http/req: %w: failed reading request body: %s", roadtrip.ErrBadFormat, err)
	}

	var doc roadtrip.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("roadtrip/http/req: %w: request body is not a JSON object: %s", roadtrip.ErrBadFormat, err)
	}

	if doc == nil {
		return nil, fmt.Errorf("roadtrip/http/req: %w: request body is not a JSON object", roadtrip.ErrBadFormat)
	}

	if err := p.ParseBody(bytes.NewReader(b), structPtr); err != nil {
		return nil, err
	}

	return doc, nil
}

// ParseQueryParams decodes into a pointer to a struct the query param data in *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.queryParamDecoder.decode(structPtr, params); err != nil {
		return fmt.Errorf("roadtrip/http/req: failed decoding request query params: %w", err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("roadtrip/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
