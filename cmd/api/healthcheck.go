package main

import (
	"net/http"
)

// Declare a handler which writes a JSON response with information about the application status, operating
// environment, version and the kind of movie store in use.
func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.env,
			"version":     version,
			"store":       app.models.Kind,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
