package models

import (
	"context"
	"fmt"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const movieColumns = `id, title, year, runtime, genres, version, average_rating, total_reviews, created_at`

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &movie, nil
}

func (m *MovieModel) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Insert seeds the catalog. Catalog management itself lives outside this service.
func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (title, year, runtime, genres) VALUES ($1, $2, $3, $4) RETURNING `+movieColumns,
		movie.Title,
		movie.Year,
		int32(movie.Runtime),
		movie.Genres,
	)
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &inserted, nil
}

func (m *MovieModel) List(ctx context.Context, f filters.Filters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), %s FROM movies
	ORDER BY %s %s, id ASC
	LIMIT $1 OFFSET $2
	`, movieColumns, f.SortColumn(), f.SortDirection())
	rows, _ := m.DB.Query(ctx, query, f.Limit(), f.Offset())
	type row struct {
		Count int `db:"count"`
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		total, err := totalFor(ctx, m.DB, f, `SELECT count(*) FROM movies`)
		return []models.Movie{}, total, err
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.Movie)
	}
	return movies, outputRows[0].Count, nil
}

// Featured returns the best rated movies, newest first among equal ratings.
func (m *MovieModel) Featured(ctx context.Context, limit int) ([]models.Movie, error) {
	rows, _ := m.DB.Query(ctx, `
	SELECT `+movieColumns+` FROM movies
	ORDER BY average_rating DESC, created_at DESC, id ASC
	LIMIT $1
	`, limit)
	movies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return movies, nil
}
