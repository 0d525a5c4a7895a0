package main

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"cinerate/proj/internal/domain/fields"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieEndpoints(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	for _, title := range []string{"Vertigo", "Psycho", "Rebecca"} {
		env.seedMovie(t, title)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/movies?sortBy=title&sortOrder=asc&limit=2", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeResponse(t, rec)
	var movies []models.Movie
	decodeField(t, resp, "movies", &movies)
	require.Len(t, movies, 2)
	assert.Equal(t, "Psycho", movies[0].Title)
	assert.Equal(t, "Rebecca", movies[1].Title)
	var meta filters.Metadata
	decodeField(t, resp, "pagination", &meta)
	assert.Equal(t, filters.Metadata{Page: 1, Limit: 2, TotalPages: 2, TotalItems: 3, HasNext: true}, meta)

	rec = env.do(t, http.MethodGet, "/api/v1/movies/999", nil, 0)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodGet, "/api/v1/movies/0", nil, 0)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListQueryValidation(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	testCases := []struct {
		query string
		field string
	}{
		{"sortBy=password", "sortBy"},
		{"sortOrder=sideways", "sortOrder"},
		{"limit=101", "limit"},
		{"limit=0", "limit"},
		{"page=0", "page"},
		{"page=abc", "page"},
		{"page=10000001", "page"},
		{"page=5534023222112865486", "page"},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/movies?"+tc.query, nil, 0)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			var fieldErrs map[string]string
			decodeField(t, decodeResponse(t, rec), "errors", &fieldErrs)
			assert.Contains(t, fieldErrs, tc.field)
		})
	}

	rec := env.do(t, http.MethodGet, "/api/v1/movies?sortOrder=ASC&limit=100", nil, 0)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMoviesPageBeyondTheEnd(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	for i := 1; i <= 5; i++ {
		env.seedMovie(t, fmt.Sprintf("M%d", i))
	}
	for _, page := range []string{"2", "10000000"} {
		rec := env.do(t, http.MethodGet, "/api/v1/movies?sortBy=title&sortOrder=asc&page="+page, nil, 0)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		resp := decodeResponse(t, rec)
		var movies []models.Movie
		decodeField(t, resp, "movies", &movies)
		assert.Empty(t, movies)
		var meta filters.Metadata
		decodeField(t, resp, "pagination", &meta)
		assert.Equal(t, 1, meta.TotalPages)
		assert.Equal(t, 5, meta.TotalItems)
		assert.False(t, meta.HasNext)
	}
}

func TestFeaturedMovies(t *testing.T) {
	env := newTestEnv(t, nil, nil)
	ctx := context.Background()
	for title, rating := range map[string]float64{"Solaris": 4.2, "Stalker": 4.8, "Mirror": 3.9} {
		movie := env.seedMovie(t, title)
		require.NoError(t, env.store.Aggregate.SetAggregate(ctx, models.MovieAggregate{
			MovieID: movie.ID, AverageRating: fields.AverageRating(rating), TotalReviews: 3,
		}))
	}

	rec := env.do(t, http.MethodGet, "/api/v1/movies/featured?limit=2", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var movies []models.Movie
	decodeField(t, decodeResponse(t, rec), "movies", &movies)
	require.Len(t, movies, 2)
	assert.Equal(t, "Stalker", movies[0].Title)
	assert.Equal(t, fields.AverageRating(4.8), movies[0].AverageRating)
	assert.Equal(t, "Solaris", movies[1].Title)

	rec = env.do(t, http.MethodGet, "/api/v1/movies/featured", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeField(t, decodeResponse(t, rec), "movies", &movies)
	assert.Len(t, movies, 3)

	for _, query := range []string{"limit=0", "limit=101", "limit=many"} {
		rec = env.do(t, http.MethodGet, "/api/v1/movies/featured?"+query, nil, 0)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}
