package main

import "net/http"

func (app *Application) userStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	stats, err := app.Services.Users.Stats(r.Context(), userID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"stats": stats}, "")
}
