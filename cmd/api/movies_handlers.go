package main

import (
	"net/http"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/lib/validator"
	"cinerate/proj/internal/services/movies"
)

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	movie, err := app.Services.Movies.Get(r.Context(), id)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) listMovies(w http.ResponseWriter, r *http.Request) {
	f, ok := app.readFilters(w, r, filters.MovieSortSafelist)
	if !ok {
		return
	}
	list, meta, err := app.Services.Movies.List(r.Context(), f)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list, "pagination": meta}, "")
}

type featuredQuery struct {
	Limit int `schema:"limit" json:"limit" validate:"gte=1,lte=100"`
}

func (app *Application) featuredMovies(w http.ResponseWriter, r *http.Request) {
	q := featuredQuery{Limit: movies.DefaultFeaturedLimit}
	if err := app.decoder.Decode(&q, r.URL.Query()); err != nil {
		app.Http.ValidationFailed(w, r, map[string]string{"limit": "Must be an integer"})
		return
	}
	if fieldErrs := validator.ValidateStruct(app.validator, q); fieldErrs != nil {
		app.Http.ValidationFailed(w, r, fieldErrs)
		return
	}
	featured, err := app.Services.Movies.Featured(r.Context(), q.Limit)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movies": featured}, "")
}
