package req_test

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/roadtrip"
	"github.com/xy-planning-network/roadtrip/http/req"
)

func TestParserParseBody(t *testing.T) {
	// Arrange
	parser := req.NewParser()

	var actual req.ValidationErrors

	type test struct {
		A string `json:"a,omitempty" validate:"required"`
		B int64  `json:"b" validate:"gt=10,required"`
		C struct {
			Nested bool `json:"nested" validate:"eq=true"`
		} `json:"c"`
		D []string `json:"d" validate:"min=1"`
		F string   `json:"-"`
	}
	var input, output test

	b := new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err := parser.ParseBody(b, struct{}{})

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrUnexpected)

	// Arrange
	b.Reset()
	b.WriteByte('\x00')

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrBadFormat)

	// Arrange
	expected := req.ValidationErrors{
		req.ValidationError{
			Field: "a",
			Rule:  "required",
		},
		req.ValidationError{
			Field: "b",
			Got:   int64(0),
			Rule:  "gt=10",
		},
		req.ValidationError{
			Field: "c.nested",
			Got:   false,
			Rule:  "eq=true",
		},
		req.ValidationError{
			Field: "d",
			Got:   []string(nil),
			Rule:  "min=1",
		},
	}

	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotValid)
	require.Equal(t, input, output)
	require.ErrorAs(t, err, &actual)
	require.Len(t, actual, 4)
	require.Equal(t, expected[0], actual[0])
	require.Equal(t, expected[1], actual[1])
	require.Equal(t, expected[2], actual[2])
	require.Equal(t, expected[3], actual[3])

	// Arrange
	input.A = "hello"
	input.B = 20
	input.C.Nested = true
	input.D = []string{"ignore"}
	input.F = "ignore"

	b = new(bytes.Buffer)
	require.Nil(t, json.NewEncoder(b).Encode(input))

	// Act
	err = parser.ParseBody(b, &output)

	// Assert
	require.Nil(t, err)
	require.Equal(t, input.A, output.A)
	require.Equal(t, input.B, output.B)
	require.Equal(t, input.C, output.C)
	require.Equal(t, input.D, output.D)
	require.Equal(t, "", output.F)
}

func TestParserParseQueryParams(t *testing.T) {
	// Arrange
	parser := req.NewParser()
	u := make(url.Values)

	// Act
	err := parser.ParseQueryParams(u, struct{}{})

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrUnexpected)

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		A string `schema:"a,required"`
	}))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotImplemented)

	// Arrange
	u.Set("a", "test")

	// Act
	err = parser.ParseQueryParams(u, new(struct {
		A struct{} `schema:"a"`
	}))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotImplemented)

	// Arrange
	type test struct {
		A string   `schema:"a" validate:"required"`
		B int64    `schema:"b" validate:"gt=10,required"`
		C []string `schema:"c" validate:"len=2,required"`
		D string   `schema:"-"`
	}

	u.Set("b", "test")

	var actual req.ValidationErrors
	expected := req.ValidationErrors{{
		Field: "b",
		Got:   "bad value at index 0",
		Rule:  "must be int64",
	}}

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, expected, 1)
	require.Equal(t, expected[0], actual[0])

	// Arrange
	u.Set("b", "1")
	u.Add("c", "1")

	expected = req.ValidationErrors{
		{
			Field: "b",
			Got:   int64(1),
			Rule:  "gt=10",
		},
		{
			Field: "c",
			Got:   []string{"1"},
			Rule:  "len=2",
		},
	}

	// Act
	err = parser.ParseQueryParams(u, new(test))

	// Assert
	require.ErrorIs(t, err, roadtrip.ErrNotValid)
	require.ErrorAs(t, err, &actual)
	require.Len(t, expected, 2)
	require.Equal(t, expected[0], actual[0])
	require.Equal(t, expected[1], actual[1])

	// Arrange
	u.Set("b", "20")
	u.Add("c", "2")
	u.Set("d", "ignore")
	actualVal := new(test)

	// Act
	err = parser.ParseQueryParams(u, actualVal)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "test", actualVal.A)
	require.Equal(t, int64(20), actualVal.B)
	require.Equal(t, []string{"1", "2"}, actualVal.C)
	require.Equal(t, "", actualVal.D)
}

func TestParserParseDocument(t *testing.T) {
	type trip struct {
		TripID string `json:"tripId" validate:"required"`
	}

	for _, tc := range []struct {
		name string
		body string
		err  error
	}{
		{"Empty", "", roadtrip.ErrBadFormat},
		{"Null", "null", roadtrip.ErrBadFormat},
		{"Array", `[{"tripId":"t1"}]`, roadtrip.ErrBadFormat},
		{"String", `"t1"`, roadtrip.ErrBadFormat},
		{"Malformed", `{"tripId":`, roadtrip.ErrBadFormat},
		{"Missing-Field", `{"userId":"u1"}`, roadtrip.ErrNotValid},
		{"Wrong-Type", `{"tripId":1}`, roadtrip.ErrBadFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			doc, err := req.NewParser().ParseDocument(strings.NewReader(tc.body), new(trip))

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Nil(t, doc)
		})
	}

	t.Run("Valid", func(t *testing.T) {
		// Arrange
		body := `{"tripId":"t1","userId":"u1","days":3,"stops":[{"stopId":"s1"}]}`
		var actual trip

		// Act
		doc, err := req.NewParser().ParseDocument(strings.NewReader(body), &actual)

		// Assert
		require.Nil(t, err)
		require.Equal(t, "t1", actual.TripID)
		require.Equal(t, roadtrip.Document{
			"tripId": "t1",
			"userId": "u1",
			"days":   float64(3),
			"stops":  []any{map[string]any{"stopId": "s1"}},
		}, doc)
	})
}
