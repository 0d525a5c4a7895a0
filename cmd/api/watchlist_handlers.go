package main

import (
	"net/http"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/lib/validator"
)

type addToWatchlistInput struct {
	MovieID int64 `json:"movieId" validate:"required,gte=1"`
}

func (app *Application) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input addToWatchlistInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	entry, err := app.Services.Watchlist.Add(r.Context(), contextGetUser(r).ID, userID, input.MovieID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"watchlistEntry": entry}, "Movie added to watchlist")
}

func (app *Application) removeFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	if err := app.Services.Watchlist.Remove(r.Context(), contextGetUser(r).ID, userID, movieID); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) watchlistStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movieID, ok := app.extractIDParam(w, r, "movieId")
	if !ok {
		return
	}
	status, err := app.Services.Watchlist.Status(r.Context(), contextGetUser(r).ID, userID, movieID)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"isInWatchlist": status.IsInWatchlist, "addedAt": status.AddedAt}, "")
}

func (app *Application) listWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, filters.WatchlistSortSafelist)
	if !ok {
		return
	}
	items, meta, err := app.Services.Watchlist.List(r.Context(), contextGetUser(r).ID, userID, f)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"watchlist": items, "pagination": meta}, "")
}
