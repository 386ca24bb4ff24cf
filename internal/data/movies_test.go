package data

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myk4040okothogodo/marquee/internal/validator"
)

func decodePayload(t *testing.T, body string) map[string]any {
	t.Helper()

	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()

	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestCreateMovieShape(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errors map[string]string
	}{
		{
			name: "valid",
			body: `{"title":"testing","year":2000,"genres":["testing","testing2"]}`,
		},
		{
			name:   "missing title",
			body:   `{"year":2000,"genres":["testing"]}`,
			errors: map[string]string{"title": "must be provided"},
		},
		{
			name:   "unexpected field",
			body:   `{"title":"testing","year":2000,"genres":["testing","testing2"],"wrongItem":"iiiiii"}`,
			errors: map[string]string{"wrongItem": "unknown field"},
		},
		{
			name:   "wrong types",
			body:   `{"title":5,"year":"2000","genres":"drama"}`,
			errors: map[string]string{"title": "must be a string", "year": "must be an integer", "genres": "must be an array of strings"},
		},
		{
			name:   "fractional year",
			body:   `{"title":"testing","year":2000.5,"genres":["drama"]}`,
			errors: map[string]string{"year": "must be an integer"},
		},
		{
			name:   "non-string genre",
			body:   `{"title":"testing","year":2000,"genres":["drama",7]}`,
			errors: map[string]string{"genres": "must be an array of strings"},
		},
		{
			name:   "empty object",
			body:   `{}`,
			errors: map[string]string{"title": "must be provided", "year": "must be provided", "genres": "must be provided"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			validator.ValidateShape(v, CreateMovieShape, decodePayload(t, tt.body))

			if tt.errors == nil {
				assert.True(t, v.Valid(), "unexpected errors: %v", v.Errors)
				return
			}
			assert.Equal(t, tt.errors, v.Errors)
		})
	}
}

func TestUpdateMovieShape(t *testing.T) {
	v := validator.New()
	validator.ValidateShape(v, UpdateMovieShape, decodePayload(t, `{"title":"EDITED TITLE in TEST"}`))
	assert.True(t, v.Valid())

	v = validator.New()
	validator.ValidateShape(v, UpdateMovieShape, decodePayload(t, `{}`))
	assert.True(t, v.Valid())

	v = validator.New()
	validator.ValidateShape(v, UpdateMovieShape, decodePayload(t, `{"director":"TESTING"}`))
	assert.Equal(t, map[string]string{"director": "unknown field"}, v.Errors)

	// The create shape must still require everything after the update shape was derived from it.
	assert.True(t, CreateMovieShape["title"].Required)
}

func TestDecodeMovieInput(t *testing.T) {
	input, err := DecodeMovieInput(decodePayload(t, `{"title":"testing","year":2000,"genres":["a","b"]}`))
	require.NoError(t, err)
	require.NotNil(t, input.Title)
	require.NotNil(t, input.Year)
	assert.Equal(t, "testing", *input.Title)
	assert.Equal(t, int32(2000), *input.Year)
	assert.Equal(t, []string{"a", "b"}, input.Genres)

	input, err = DecodeMovieInput(decodePayload(t, `{"year":1999}`))
	require.NoError(t, err)
	assert.Nil(t, input.Title)
	assert.Nil(t, input.Genres)
	assert.Equal(t, int32(1999), *input.Year)

	input, err = DecodeMovieInput(decodePayload(t, `{"genres":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, input.Genres)
	assert.Empty(t, input.Genres)

	_, err = DecodeMovieInput(decodePayload(t, `{"year":99999999999}`))
	assert.Error(t, err)

	_, err = DecodeMovieInput(map[string]any{"title": 5})
	assert.Error(t, err)
}

func TestDecodeMovieInput_KeepsValuesAsSent(t *testing.T) {
	body := `{"title":"","year":1500,"genres":["a","a","b","c","d","e"]}`

	v := validator.New()
	payload := decodePayload(t, body)
	validator.ValidateShape(v, CreateMovieShape, payload)
	require.True(t, v.Valid(), v.Errors)

	input, err := DecodeMovieInput(payload)
	require.NoError(t, err)

	movie := NewMovie(input)
	assert.Equal(t, "", movie.Title)
	assert.Equal(t, int32(1500), movie.Year)
	assert.Equal(t, []string{"a", "a", "b", "c", "d", "e"}, movie.Genres)
}
