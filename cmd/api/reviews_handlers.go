package main

import (
	"net/http"

	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/services/reviews"
)

func (app *Application) createReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input reviews.ReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	user := contextGetUser(r)
	review, agg, err := app.Services.Reviews.Create(r.Context(), user.ID, movieID, input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"review": review, "movieRating": agg}, "Review created")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input reviews.ReviewInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	review, agg, err := app.Services.Reviews.Update(r.Context(), id, contextGetUser(r).ID, input)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": review, "movieRating": agg}, "Review updated")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := app.Services.Reviews.Delete(r.Context(), id, contextGetUser(r).ID); err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.NoContent(w, r)
}

func (app *Application) listMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, filters.ReviewSortSafelist)
	if !ok {
		return
	}
	page, meta, err := app.Services.Reviews.ListByMovie(r.Context(), movieID, f)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": page, "pagination": meta}, "")
}

func (app *Application) listUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	f, ok := app.readFilters(w, r, filters.ReviewSortSafelist)
	if !ok {
		return
	}
	page, meta, err := app.Services.Reviews.ListByUser(r.Context(), userID, f)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": page, "pagination": meta}, "")
}
