package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/myk4040okothogodo/marquee/internal/data"
	"github.com/myk4040okothogodo/marquee/internal/validator"
)

func (app *application) welcomeHandler(w http.ResponseWriter, r *http.Request) {
	app.writeText(w, http.StatusOK, "Welcome to my Movie API")
}

// The listMoviesHandler for the "GET /movies" endpoint returns every movie in the order it was created. An
// empty store gives an empty JSON array.
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.models.Movies.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// The createMovieHandler for the "POST /movies" endpoint.
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := app.readPayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, ok := app.validateMoviePayload(w, r, data.CreateMovieShape, payload)
	if !ok {
		return
	}

	movie := data.NewMovie(input)

	err = app.models.Movies.Insert(movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// When sending a HTTP response, we want to include a Location header to let the client know which URL
	// they can find the newly-created resource at.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, movie, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) showMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.movieNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// The updateMovieHandler for the "PATCH /movies/:id" endpoint. The movie has to exist before the payload is
// even looked at, so a missing movie is a 404 whatever the body contains.
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	_, err = app.models.Movies.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.movieNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	payload, err := app.readPayload(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input, ok := app.validateMoviePayload(w, r, data.UpdateMovieShape, payload)
	if !ok {
		return
	}

	// The movie may have been deleted between the Get() above and now, so Update() can still report a
	// missing record.
	movie, err := app.models.Movies.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.movieNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Movies.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.movieNotFoundResponse(w, r, id)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "movie successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// validateMoviePayload checks a decoded payload against the shape and converts it to a MovieInput. If either
// step fails it sends the 400 response itself and returns false.
func (app *application) validateMoviePayload(w http.ResponseWriter, r *http.Request, shape validator.Shape, payload map[string]any) (data.MovieInput, bool) {
	v := validator.New()

	validator.ValidateShape(v, shape, payload)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return data.MovieInput{}, false
	}

	input, err := data.DecodeMovieInput(payload)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return data.MovieInput{}, false
	}

	return input, true
}
