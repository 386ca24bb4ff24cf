package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// Define an envelope type.
type envelope map[string]any

// Retrieve the "id" URL parameter from the current request context, then convert it to an integer and
// return it. If the operation isn't successful, return 0 and an error.
func (app *application) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}

// Define a writeJSON() helper for sending responses. This takes the destination http.ResponseWriter, the
// HTTP status code to send, the data to encode to JSON, and a header map containing any additional HTTP
// headers we want to include in the response.
func (app *application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	// Append a newline to make it easier to view in terminal applications.
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// readPayload decodes the request body into a generic JSON object. Numbers are kept as json.Number so that
// the shape check can tell integers from floats. Unknown fields are not rejected here; that is the job of
// the shape check, which reports them per field.
func (app *application) readPayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	// Use http.MaxBytesReader() to limit the size of the request body to 1MB.
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var payload map[string]any
	err := dec.Decode(&payload)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		// Use the errors.As() function to check whether the error has the type *json.SyntaxError. If it
		// does, then return a plain-english error message which includes the location of the problem.
		case errors.As(err, &syntaxError):
			return nil, fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)

		// In some circumstances Decode() may also return an io.ErrUnexpectedEOF error for syntax errors in
		// the JSON.
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, errors.New("body contains badly-formed JSON")

		// A JSON value which isn't an object (an array, a string, ...) can't be decoded into the map.
		case errors.As(err, &unmarshalTypeError):
			return nil, errors.New("body must contain a JSON object")

		case errors.Is(err, io.EOF):
			return nil, errors.New("body must not be empty")

		case errors.As(err, &maxBytesError):
			return nil, fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)

		default:
			return nil, err
		}
	}

	// A literal null decodes without error and leaves the map nil.
	if payload == nil {
		return nil, errors.New("body must contain a JSON object")
	}

	// Call Decode() again, using a pointer to an empty anonymous struct as the destination. If the request
	// body only contained a single JSON value this will return an io.EOF error.
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return nil, errors.New("body must only contain a single JSON value")
	}

	return payload, nil
}

// writeText sends a plain text response.
func (app *application) writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, text)
}
