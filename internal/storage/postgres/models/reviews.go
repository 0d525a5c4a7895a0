package models

import (
	"context"
	"fmt"
	"cinerate/proj/internal/domain/filters"
	"cinerate/proj/internal/domain/models"
	"cinerate/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, user_id, movie_id, rating, review_text, created_at, updated_at`

type ReviewModel struct {
	DB *pgxpool.Pool
}

// Insert relies on the (user_id, movie_id) unique constraint: a duplicate
// fails the insert itself with storage.ErrConflict.
func (m *ReviewModel) Insert(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO reviews (user_id, movie_id, rating, review_text) VALUES ($1, $2, $3, $4) RETURNING `+reviewColumns,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.ReviewText,
	)
	inserted, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &inserted, nil
}

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	rows, err := m.DB.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &review, nil
}

// Update changes rating and text only. The owner is part of the WHERE clause.
func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE reviews SET rating = $1, review_text = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4 RETURNING `+reviewColumns,
		review.Rating,
		review.ReviewText,
		review.ID,
		review.UserID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return &updated, nil
}

func (m *ReviewModel) Delete(ctx context.Context, id int64, userID int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64, f filters.Filters) ([]models.Review, int, error) {
	return m.list(ctx, "movie_id", movieID, f)
}

func (m *ReviewModel) ListForUser(ctx context.Context, userID int64, f filters.Filters) ([]models.Review, int, error) {
	return m.list(ctx, "user_id", userID, f)
}

func (m *ReviewModel) list(ctx context.Context, byColumn string, id int64, f filters.Filters) ([]models.Review, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), %s FROM reviews
	WHERE %s = $1
	ORDER BY %s %s, id ASC
	LIMIT $2 OFFSET $3
	`, reviewColumns, byColumn, f.SortColumn(), f.SortDirection())
	rows, _ := m.DB.Query(ctx, query, id, f.Limit(), f.Offset())
	type row struct {
		Count int `db:"count"`
		models.Review
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		total, err := totalFor(ctx, m.DB, f, `SELECT count(*) FROM reviews WHERE `+byColumn+` = $1`, id)
		return []models.Review{}, total, err
	}
	reviews := make([]models.Review, 0, len(outputRows))
	for _, row := range outputRows {
		reviews = append(reviews, row.Review)
	}
	return reviews, outputRows[0].Count, nil
}

// RatingHistogram counts the reviews a user wrote per rating value.
func (m *ReviewModel) RatingHistogram(ctx context.Context, userID int64) (map[int]int64, error) {
	rows, err := m.DB.Query(ctx, `SELECT rating, count(*) FROM reviews WHERE user_id = $1 GROUP BY rating`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	histogram := make(map[int]int64)
	for rows.Next() {
		var rating int
		var count int64
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		histogram[rating] = count
	}
	return histogram, rows.Err()
}
