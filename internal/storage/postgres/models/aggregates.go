package models

import (
	"context"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AggregateModel is the movie aggregate store: it reads the authoritative review
// set and owns the average_rating/total_reviews columns of movies.
type AggregateModel struct {
	DB *pgxpool.Pool
}

func (m *AggregateModel) RatingsForMovie(ctx context.Context, movieID int64) ([]int, error) {
	rows, _ := m.DB.Query(ctx, `SELECT rating FROM reviews WHERE movie_id = $1`, movieID)
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (m *AggregateModel) SetAggregate(ctx context.Context, agg models.MovieAggregate) error {
	status, err := m.DB.Exec(
		ctx,
		`UPDATE movies SET average_rating = $2, total_reviews = $3 WHERE id = $1`,
		agg.MovieID,
		float64(agg.AverageRating),
		agg.TotalReviews,
	)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *AggregateModel) MovieIDs(ctx context.Context) ([]int64, error) {
	rows, _ := m.DB.Query(ctx, `SELECT id FROM movies ORDER BY id`)
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}
