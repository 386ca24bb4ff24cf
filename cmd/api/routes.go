package main

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	// Initialize a new httprouter router instance.
	router := httprouter.New()

	// Convert the notFoundResponse() helper to a http.Handler using the http.HandlerFunc() adapter, and then
	// set it as the custom error handler for 404 Not Found responses. With HandleMethodNotAllowed turned off
	// a known path with an unsupported method (DELETE /movies, PATCH /movies) falls through to the same
	// handler and answers 404 as well.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.HandleMethodNotAllowed = false

	router.HandlerFunc(http.MethodGet, "/", app.welcomeHandler)
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/movies/:id", app.showMovieHandler)
	router.HandlerFunc(http.MethodPatch, "/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.deleteMovieHandler)

	// Register a new GET /debug/vars endpoint pointing to the expvar handler.
	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())

	return app.metrics(app.requestID(app.recoverPanic(app.enableCORS(app.rateLimit(router)))))
}
